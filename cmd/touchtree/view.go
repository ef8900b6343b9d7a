package main

import (
	"github.com/phanxgames/touchtree"
	"github.com/spf13/cobra"
)

func newViewCmd(a *app) *cobra.Command {
	var width, height int
	var debug bool

	cmd := &cobra.Command{
		Use:   "view <tree.yaml>",
		Short: "Open a window showing hit regions and the hovered chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadTreeFile(args[0])
			if err != nil {
				return err
			}
			scene := touchtree.NewScene()
			scene.SetRoot(root)
			scene.ClearColor = touchtree.Color{R: 0.1, G: 0.1, B: 0.12, A: 1}
			scene.OnClick(func(ctx touchtree.ClickContext) {
				a.logger.Info("click", "chain", ctx.Chain.String(), "x", ctx.GlobalX, "y", ctx.GlobalY)
			})
			return touchtree.Run(scene, touchtree.RunConfig{
				Title:     "touchtree: " + args[0],
				Width:     width,
				Height:    height,
				ShowChain: true,
				Debug:     debug,
			})
		},
	}
	cmd.Flags().IntVar(&width, "width", 640, "Window width")
	cmd.Flags().IntVar(&height, "height", 480, "Window height")
	cmd.Flags().BoolVar(&debug, "debug", false, "Log every press chain to stderr")
	return cmd
}

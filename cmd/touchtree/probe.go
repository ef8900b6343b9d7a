package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/phanxgames/touchtree"
	"github.com/spf13/cobra"
)

func newProbeCmd(a *app) *cobra.Command {
	var x, y float64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "probe <tree.yaml>",
		Short: "Print the hit chain for a point",
		Long:  `Loads a node tree and prints the chain of nodes a pointer at (x, y) reaches, deepest first.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadTreeFile(args[0])
			if err != nil {
				return err
			}
			chain := touchtree.HitTest(root, x, y)
			a.logger.Debug("probe", "tree", args[0], "x", x, "y", y, "depth", len(chain))

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				return enc.Encode(struct {
					X     float64  `json:"x"`
					Y     float64  `json:"y"`
					Chain []string `json:"chain"`
				}{x, y, chain.Names()})
			}
			if len(chain) == 0 {
				_, err = fmt.Fprintln(out, "(no hit)")
				return err
			}
			_, err = fmt.Fprintln(out, chain)
			return err
		},
	}
	cmd.Flags().Float64Var(&x, "x", 0, "X coordinate in the root's parent space")
	cmd.Flags().Float64Var(&y, "y", 0, "Y coordinate in the root's parent space")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the chain as JSON")
	return cmd
}

func loadTreeFile(path string) (*touchtree.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tree: %w", err)
	}
	return touchtree.LoadTree(data)
}

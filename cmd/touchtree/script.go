package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phanxgames/touchtree"
	"github.com/spf13/cobra"
)

// printSink writes one line per dispatched event.
type printSink struct {
	out    io.Writer
	logger *slog.Logger
}

func (p printSink) EmitEvent(ev touchtree.InteractionEvent) {
	name := ev.NodeName
	if name == "" {
		name = "-"
	}
	_, _ = fmt.Fprintf(p.out, "%s %s [%s]\n", ev.Type, name, strings.Join(ev.Chain, " > "))
	p.logger.Debug("event", "type", ev.Type.String(), "node", name, "x", ev.GlobalX, "y", ev.GlobalY)
}

func newScriptCmd(a *app) *cobra.Command {
	var maxFrames int
	var quiet bool

	cmd := &cobra.Command{
		Use:   "script <tree.yaml> <script.yaml>",
		Short: "Run a pointer script against a tree without a window",
		Long:  `Drives a scene frame by frame from a YAML script, printing every dispatched event and failing if any expect step resolves a different chain.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadTreeFile(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			runner, err := touchtree.LoadTestScript(data)
			if err != nil {
				return err
			}

			scene := touchtree.NewScene()
			scene.SetRoot(root)
			scene.SetTestRunner(runner)
			if !quiet {
				scene.SetEventSink(printSink{out: cmd.OutOrStdout(), logger: a.logger})
			}

			frames := 0
			for !runner.Done() {
				if frames >= maxFrames {
					return fmt.Errorf("script did not finish within %d frames", maxFrames)
				}
				scene.Update()
				frames++
			}
			a.logger.Info("script finished", "frames", frames, "failures", len(runner.Failures()))

			if failures := runner.Failures(); len(failures) > 0 {
				for _, f := range failures {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), f)
				}
				return fmt.Errorf("%d expectation(s) failed", len(failures))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxFrames, "max-frames", 10000, "Abort after this many frames")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Do not print dispatched events")
	return cmd
}

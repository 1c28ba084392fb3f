package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newConnectCommand(ctx *commandContext) *cobra.Command {
	var (
		layer    int
		slot     int
		noFanout bool
	)
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Run the connect protocol once for a clip",
		Long: `Connects the fixed slot on every layer in order, then the clip at
--slot on --layer. Stops at the first failed request; earlier connects are
not undone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if layer < 1 || slot < 1 {
				return errors.New("--layer and --slot must both be >= 1")
			}
			if err := ctx.setup(cmd.Context(), false); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			v := ctx.viewer(ctx.config.Deck.Fanout && !noFanout)
			clips, err := v.LoadLayer(cmd.Context(), layer)
			if err != nil {
				return err
			}
			var clipID int64
			if slot <= len(clips) {
				clipID = clips[slot-1].ID
			}

			res, err := v.Select(cmd.Context(), clipID, slot)
			for i, step := range res.Steps {
				state := "ok"
				switch {
				case i == res.Completed && err != nil:
					state = "failed"
				case i >= res.Completed:
					state = "skipped"
				}
				fmt.Fprintf(out, "%-8s %s\n", state, step)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "next layer: %d of %d\n", v.CurrentLayer(), v.TotalLayers())
			return nil
		},
	}
	cmd.Flags().IntVarP(&layer, "layer", "l", 0, "1-based layer of the clip")
	cmd.Flags().IntVarP(&slot, "slot", "s", 0, "1-based slot of the clip")
	cmd.Flags().BoolVar(&noFanout, "no-fanout", false, "Skip connecting the fixed slot on every layer")
	_ = cmd.MarkFlagRequired("layer")
	_ = cmd.MarkFlagRequired("slot")
	return cmd
}

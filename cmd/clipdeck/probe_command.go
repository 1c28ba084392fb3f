package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var layer, slot int
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Report whether a clip slot is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			if layer < 1 || slot < 1 {
				return errors.New("--layer and --slot must both be >= 1")
			}
			if err := ctx.setup(cmd.Context(), false); err != nil {
				return err
			}
			probe, err := ctx.client().ClipSlot(cmd.Context(), layer, slot)
			if err != nil {
				return err
			}
			if probe.Empty {
				fmt.Fprintf(cmd.OutOrStdout(), "layer %d slot %d: empty\n", layer, slot)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "layer %d slot %d: clip %d\n", layer, slot, probe.ClipID)
			return nil
		},
	}
	cmd.Flags().IntVarP(&layer, "layer", "l", 0, "1-based layer")
	cmd.Flags().IntVarP(&slot, "slot", "s", 0, "1-based slot")
	_ = cmd.MarkFlagRequired("layer")
	_ = cmd.MarkFlagRequired("slot")
	return cmd
}

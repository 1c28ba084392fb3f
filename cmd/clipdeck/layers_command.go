package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"clipdeck/internal/composition"
)

func newLayersCommand(ctx *commandContext) *cobra.Command {
	var layer int
	cmd := &cobra.Command{
		Use:   "layers",
		Short: "List composition layers and their clips",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.setup(cmd.Context(), false); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			overrides := ctx.config.Overrides()

			if layer > 0 {
				v := ctx.viewer(ctx.config.Deck.Fanout)
				clips, err := v.LoadLayer(cmd.Context(), layer)
				if err != nil {
					return err
				}
				if len(clips) == 0 {
					fmt.Fprintf(out, "No clips available for layer %d (composition has %d layers).\n", layer, v.TotalLayers())
					return nil
				}
				fmt.Fprintln(out, renderTable(clipHeaders, clipRows(layer, clips, overrides), clipAligns))
				return nil
			}

			comp, err := ctx.client().Composition(cmd.Context())
			if err != nil {
				return err
			}
			var rows [][]string
			for i, l := range comp.Layers {
				rows = append(rows, clipRows(i+1, l.Clips, overrides)...)
			}
			fmt.Fprintln(out, renderTable(clipHeaders, rows, clipAligns))
			fmt.Fprintf(out, "%d layers\n", comp.LayerCount())
			return nil
		},
	}
	cmd.Flags().IntVarP(&layer, "layer", "l", 0, "Only show this 1-based layer")
	return cmd
}

var (
	clipHeaders = []string{"Layer", "Slot", "Clip ID", "Name", "Label"}
	clipAligns  = []columnAlignment{alignRight, alignRight, alignRight, alignLeft, alignLeft}
)

// clipRows lists every clip in a layer; clips the deck would hide get an
// empty label column.
func clipRows(layer int, clips []composition.Clip, o composition.Overrides) [][]string {
	labels := make(map[int]string)
	for _, d := range composition.Displayable(clips, o) {
		labels[d.Slot] = d.Label
	}
	rows := make([][]string, 0, len(clips))
	for i, c := range clips {
		rows = append(rows, []string{
			strconv.Itoa(layer),
			strconv.Itoa(i + 1),
			strconv.FormatInt(c.ID, 10),
			c.Name.Value,
			labels[i+1],
		})
	}
	return rows
}

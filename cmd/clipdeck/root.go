package main

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"clipdeck/internal/ui"
)

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:   "clipdeck",
		Short: "Connect composition clips layer by layer from the terminal",
		Long: `clipdeck shows the clips of one composition layer at a time as buttons.
Choosing a clip connects the fixed slot on every layer, then the chosen clip,
and moves on to the next layer.

Run without arguments to start the interactive deck.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeck(cmd, ctx)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&ctx.baseURLFlag, "base-url", "", "Composition API root (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&ctx.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newLayersCommand(ctx))
	rootCmd.AddCommand(newConnectCommand(ctx))
	rootCmd.AddCommand(newProbeCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func runDeck(cmd *cobra.Command, ctx *commandContext) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("the interactive deck needs a terminal; use `clipdeck layers` or `clipdeck connect` instead")
	}
	if err := ctx.setup(cmd.Context(), true); err != nil {
		return err
	}
	ctx.logger.Info("deck started")

	v := ctx.viewer(ctx.config.Deck.Fanout)
	model := ui.NewAppModel(cmd.Context(), v, ctx.config.Deck.Columns, ctx.logger).AsTeaModel()
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
		return nil
	}
	return err
}

package cmd

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"english-hub/config"
	"english-hub/gateway"
	"english-hub/logger"
	"english-hub/session"
	"english-hub/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the clubs in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		// the terminal belongs to the UI; logs go to a file or nowhere
		if cfg.LogDir != "" {
			closer, err := logger.InitFileLogger(cfg.LogDir, false)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer closer.Close()
		} else {
			logger.InitLogger(io.Discard)
		}
		logger.SetLogLevel(cfg.Env)

		store, err := session.NewBoltStore(cfg.TUIStatePath)
		if err != nil {
			return fmt.Errorf("failed to open state file %s: %w", cfg.TUIStatePath, err)
		}
		defer store.Close()

		gw, err := gateway.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer gw.Close()

		model := tui.New(tui.Deps{
			Gate:    session.NewGate(store),
			Gateway: gw,
			Upload:  uploadOptions(cfg),
		})
		_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	},
}

package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ragchat/internal/config"
	"ragchat/internal/tui"
)

func tuiCMD(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Ask and chat interactively in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Log lines on stderr would tear the alternate screen.
			a, err := buildApp(cmd.Context(), *cfgPath, func(c *config.AppConfig) { c.Log.Level = "error" })
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			_, err = tea.NewProgram(tui.New(a.service), tea.WithAltScreen()).Run()
			return err
		},
	}
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func askCMD(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <query...>",
		Short: "Answer a single question and print the sources",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context(), *cfgPath)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			res, err := a.service.Ask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Answer)
			if len(res.Sources) > 0 {
				fmt.Fprintln(out, "\nSources:")
				for i, s := range res.Sources {
					fmt.Fprintf(out, "  [%d] %s\n      %s\n", i+1, s.Title, s.URL)
				}
			}
			fmt.Fprintf(out, "\nsession: %s\n", res.SessionID)
			return nil
		},
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	root := &cobra.Command{
		Use:           "ragchat",
		Short:         "Answer questions from web search results and keep chatting about them",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "YAML config file (default ./config.yaml, then ~/.config/ragchat/config.yaml)")

	root.AddCommand(serveCMD(&cfgPath), askCMD(&cfgPath), tuiCMD(&cfgPath))
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

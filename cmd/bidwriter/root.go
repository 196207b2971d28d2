package main

import (
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:     "bidwriter",
		Short:   "Tender analysis and proposal generation backend",
		Long:    "bidwriter parses uploaded tender documents, analyzes them with an external model, and drafts structured proposal content.",
		Version: version,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	root.AddCommand(serve)
	root.RunE = serve.RunE

	return root
}

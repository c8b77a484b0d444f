package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/markscan/internal/api"
	"github.com/jackzampolin/markscan/internal/extract"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the extraction service",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		cfg := a.config.Get()

		status, err := extract.Dial(cfg.ServerURL, cfg.Timeout, a.logger).Status(cmd.Context())
		if err != nil {
			return err
		}
		return api.Output(status)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/markscan/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local browser UI",
	Long: `Start a local web page for selecting a document, previewing it and
viewing the extraction result side by side.

One session is shared by every browser tab; a second upload while an
extraction is running is rejected. Edits to the config file are picked
up without a restart.

The server provides:
  - /           - Upload form and latest result
  - /ui/extract - Upload endpoint (multipart field "file")
  - /ui/state   - Session state as JSON
  - /health     - Basic server health check

Examples:
  markscan serve                    # Start on default port 8080
  markscan serve --port 3000        # Start on custom port
  markscan serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		cfg := a.config.Get()

		srv, err := server.New(server.Config{
			Host:          cfg.UI.Host,
			Port:          cfg.UI.Port,
			ConfigManager: a.config,
			Home:          a.home,
			Logger:        a.logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().String("port", "8080", "Port to listen on")

	rootCmd.AddCommand(serveCmd)
}

package cmd

import (
	"github.com/aqlanhadi/depsum/api"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the upload form server",
	Long:  `Starts the HTTP server that accepts statement PDFs and renders their deposit summaries.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		processor, err := newProcessor()
		if err != nil {
			return err
		}

		cfg := api.DefaultConfig()
		cfg.Port = ":" + viper.GetString("server.port")
		if servePort != "" {
			cfg.Port = ":" + servePort
		}
		if mem := viper.GetInt64("server.max_upload_memory"); mem > 0 {
			cfg.MaxUploadMemory = mem
		}
		cfg.Logger = logger.WithField("component", "server")

		return api.New(cfg, processor).Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to run the server on (default from server.port)")
}

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mentorque/skillmatch/internal/config"
	"github.com/mentorque/skillmatch/internal/server"
)

var (
	serveConfigPath string
	servePort       int
	serveEngineURL  string
	serveJSONLogs   bool
	serveVerbose    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes skill comparison, history, and health endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on")
	serveCmd.Flags().StringVar(&serveEngineURL, "engine-url", "", "Base URL of the extraction engine")
	serveCmd.Flags().BoolVar(&serveJSONLogs, "json-logs", false, "Emit JSON-encoded logs")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(config.Config{
		Port:      servePort,
		EngineURL: serveEngineURL,
		JSONLogs:  serveJSONLogs,
		Verbose:   serveVerbose,
	}, serveConfigPath)
	if err != nil {
		return err
	}

	svc, supervisor, history, log, err := buildApp(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	srv := server.New(server.Config{
		Port:       cfg.Port,
		JWTSecret:  cfg.JWTSecret,
		UseBrowser: cfg.UseBrowser,
	}, svc, supervisor, history, log)

	return srv.Start()
}

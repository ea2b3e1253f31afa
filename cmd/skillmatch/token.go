package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mentorque/skillmatch/internal/config"
	"github.com/mentorque/skillmatch/internal/server"
)

var (
	tokenConfigPath string
	tokenSubject    string
	tokenSecret     string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API bearer token",
	Long:  `Sign a bearer token for the HTTP API using the configured JWT secret. The server accepts it on the Authorization header.`,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "api-client", "Subject claim for the token")
	tokenCmd.Flags().StringVar(&tokenSecret, "secret", "", "JWT signing secret (optional, defaults to JWT_SECRET env var or config)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(config.Config{JWTSecret: tokenSecret}, tokenConfigPath)
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("a signing secret is required: use --secret, set JWT_SECRET, or configure jwt_secret")
	}

	token, err := server.NewJWTService(cfg.JWTSecret).GenerateToken(tokenSubject)
	if err != nil {
		return err
	}

	cmd.Println(token)
	return nil
}

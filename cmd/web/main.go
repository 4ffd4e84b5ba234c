package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/cost-reporter/pkg/server"
	"github.com/de-tools/cost-reporter/pkg/services/job"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the cost report job's health and manual-run endpoints",
		RunE:  runServer,
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	reportJob, err := job.Build(ctx)
	if err != nil {
		return fmt.Errorf("failed to build report job: %w", err)
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")
	if host == "" || port == "" {
		logger.Error().Msg("missing SERVER_HOST/SERVER_PORT configuration")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Runner: reportJob,
		},
	})

	return api.Start()
}

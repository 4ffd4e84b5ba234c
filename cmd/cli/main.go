package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/de-tools/cost-reporter/pkg/adapters"
	"github.com/de-tools/cost-reporter/pkg/models/domain"
	"github.com/de-tools/cost-reporter/pkg/services/job"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var testMode bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "cost-reporter",
		Short: "Run the AWS cost report job once",
		RunE:  runOnce,
	}

	rootCmd.Flags().BoolVarP(&testMode, "test", "t", false,
		"Run the full pipeline but skip sending the report email")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runOnce(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	result := job.Execute(ctx, job.Event{
		Source: "cli",
		Time:   time.Now(),
		Test:   testMode,
	})

	encoded, err := json.MarshalIndent(adapters.MapRunResultDomainToApi(result), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode run result: %w", err)
	}
	fmt.Println(string(encoded))

	if result.Status == domain.RunFailed {
		return fmt.Errorf("run failed: %s", result.Err.Error())
	}
	return nil
}

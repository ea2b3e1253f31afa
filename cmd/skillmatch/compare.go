package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mentorque/skillmatch/internal/compare"
	"github.com/mentorque/skillmatch/internal/config"
	"github.com/mentorque/skillmatch/internal/fetch"
)

var (
	compareConfigPath string
	compareJob        string
	compareJobURL     string
	compareSkills     []string
	compareTrace      bool
	compareUseBrowser bool
	compareEngineURL  string
	compareNoShuffle  bool
	compareVerbose    bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a job description against your skills",
	Long: `Reads a job description from a file, URL, or stdin, extracts its skills
through the NLP engine, and prints a JSON report of present and missing
skills with a weighted match percentage.`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	compareCmd.Flags().StringVarP(&compareJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	compareCmd.Flags().StringVar(&compareJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	compareCmd.Flags().StringSliceVarP(&compareSkills, "skill", "s", nil, "A skill you have (repeatable)")
	compareCmd.Flags().BoolVar(&compareTrace, "trace", false, "Include the per-skill matching trace in the report")
	compareCmd.Flags().BoolVar(&compareUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	compareCmd.Flags().StringVar(&compareEngineURL, "engine-url", "", "Base URL of the extraction engine")
	compareCmd.Flags().BoolVar(&compareNoShuffle, "no-shuffle", false, "Deterministic output ordering")
	compareCmd.Flags().BoolVarP(&compareVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(config.Config{
		Job:            compareJob,
		JobURL:         compareJobURL,
		EngineURL:      compareEngineURL,
		UseBrowser:     compareUseBrowser,
		DisableShuffle: compareNoShuffle,
		Verbose:        compareVerbose,
	}, compareConfigPath)
	if err != nil {
		return err
	}

	text, err := readJobText(ctx, cfg)
	if err != nil {
		return err
	}

	svc, _, history, log, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	if history != nil {
		defer history.Close()
	}

	report, err := svc.Compare(ctx, &compare.Request{
		JobDescriptionText: text,
		UserSkills:         compareSkills,
		IncludeTrace:       compareTrace,
	})
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// readJobText resolves the job description from a file, a URL, or stdin.
func readJobText(ctx context.Context, cfg config.Config) (string, error) {
	switch {
	case cfg.Job != "":
		data, err := os.ReadFile(cfg.Job)
		if err != nil {
			return "", fmt.Errorf("failed to read job file: %w", err)
		}
		return string(data), nil
	case cfg.JobURL != "":
		return fetch.JobPosting(ctx, cfg.JobURL, cfg.UseBrowser)
	default:
		stat, err := os.Stdin.Stat()
		if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return "", fmt.Errorf("failed to read stdin: %w", err)
			}
			if text := strings.TrimSpace(string(data)); text != "" {
				return text, nil
			}
		}
		return "", fmt.Errorf("a job description is required: use --job, --job-url, or pipe text to stdin")
	}
}

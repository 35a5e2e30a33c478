package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fabioluciano/profile-analyzer/internal/config"
	apperrors "github.com/fabioluciano/profile-analyzer/internal/errors"
	"github.com/fabioluciano/profile-analyzer/internal/export"
	"github.com/fabioluciano/profile-analyzer/internal/github"
	"github.com/fabioluciano/profile-analyzer/internal/llm"
	"github.com/fabioluciano/profile-analyzer/internal/pipeline"
	"github.com/fabioluciano/profile-analyzer/internal/snapshot"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	verbose bool
	logger  *logrus.Logger
	cfg     *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if e, ok := err.(*apperrors.Error); ok {
			fmt.Fprintf(os.Stderr, "Error: %s\n", e.DetailedString())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "profile-analyzer",
	Short: "Generate a GitHub profile README from your activity",
	Long: `profile-analyzer fetches your GitHub activity (starred repos, own repos,
recent events), compares it against the previous run, and asks Gemini to
write your profile README in multiple languages.

Configuration is environment-driven: GITHUB_USERNAME, GITHUB_TOKEN,
GEMINI_API_KEY are required; OUTPUT_DIR defaults to the current directory.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logrus.New()
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		} else {
			logger.SetLevel(logrus.InfoLevel)
		}
	},
	RunE: runAnalysis,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.SetVersionTemplate(`profile-analyzer {{.Version}}
Build time: ` + BuildTime + `
Git commit: ` + GitCommit + `
`)
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client, err := github.NewClient(cfg.GitHub.Token, cfg.GitHub.RateLimit)
	if err != nil {
		return err
	}

	generator, err := llm.NewGeminiGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		return err
	}

	orchestrator := pipeline.NewOrchestrator(
		cfg,
		client,
		snapshot.NewStore(cfg.Output.Dir),
		generator,
		export.NewExporter(cfg.Output.Dir),
		logger,
	)

	result, err := orchestrator.Run(ctx)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"run_id":   result.RunID,
		"starred":  result.Starred,
		"owned":    result.Owned,
		"added":    result.AddedStars,
		"removed":  result.RemovedStars,
		"trending": result.Trending,
	}).Info("Profile analysis completed successfully")

	return nil
}

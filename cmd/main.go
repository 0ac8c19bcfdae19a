package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harekrishnarai/dormant/pkg/analyzer"
	"github.com/harekrishnarai/dormant/pkg/config"
	"github.com/harekrishnarai/dormant/pkg/githubapi"
	"github.com/harekrishnarai/dormant/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	command := "run"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "run":
		run()

	case "help":
		displayUsage()

	default:
		fmt.Printf("❌ Unknown command: %s\n", command)
		displayUsage()
		os.Exit(1)
	}
}

// displayUsage shows the usage information for the tool
func displayUsage() {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	green := color.New(color.FgGreen, color.Bold).SprintFunc()

	fmt.Printf("\n%s\n\n", cyan("Dormant Repository Archiver"))
	fmt.Printf("%s\n", yellow("Usage:"))
	fmt.Printf("  %s\n", green("dormant [run]"))
	fmt.Printf("  %s\n\n", green("dormant help"))

	fmt.Printf("%s\n", yellow("Environment:"))
	fmt.Printf("  %s\t%s\n", green("DORMANT_TOKEN"), "GitHub access token (falls back to DORMANT_TOKEN_FILE, then GITHUB_TOKEN)")
	fmt.Printf("  %s\t%s\n", green("DORMANT_TOKEN_FILE"), "File containing the access token")
	fmt.Printf("  %s\t%s\n", green("DORMANT_MAX_INACTIVE_DAYS"), "Minimum age and commit-free window in days (default: 180)")
	fmt.Printf("  %s\t%s\n", green("DORMANT_FAIL_OPEN"), "Archive when commit history cannot be read (default: false)")
	fmt.Printf("  %s\t%s\n", green("DORMANT_DRY_RUN"), "Only report what would be archived (default: false)")
	fmt.Printf("  %s\t%s\n", green("DORMANT_AFFILIATION"), "Repositories to list: owner, collaborator, organization_member (default: owner)")
	fmt.Printf("  %s\t%s\n", green("DORMANT_BASE_URL"), "GitHub Enterprise API URL (optional)")
	fmt.Printf("  %s\t%s\n", green("DORMANT_LOG_LEVEL"), "debug, info, warn or error (default: info)")
	fmt.Printf("  %s\t%s\n", green("DORMANT_LOG_FORMAT"), "json or console (default: json)")
	fmt.Printf("  %s\t%s\n", green("DORMANT_PROGRESS"), "Show a progress bar on stderr (default: false)")
	fmt.Printf("  %s\t%s\n\n", green("DORMANT_SILENT"), "Suppress banner and summary (default: false)")

	fmt.Printf("%s\n", yellow("Exemptions:"))
	fmt.Printf("  %s\n", "A repository is never archived when it has a .NOARCHIVE file at its root or any topic.")
	fmt.Printf("\n")
}

// run archives every dormant repository of the authenticated user
func run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("❌ Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// stdout carries only log lines; human output goes to stderr.
	analyzer.DisplayBanner(os.Stderr, cfg.Silent)

	client, err := githubapi.NewClient(cfg.Token, cfg.BaseURL, cfg.Affiliation, logger.Named("github"))
	if err != nil {
		logger.Fatal("failed to create GitHub client", zap.Error(err))
	}

	evaluator := analyzer.NewEvaluator(analyzer.Policy{
		Threshold: cfg.Threshold(),
		FailOpen:  cfg.FailOpen,
	}, logger)

	opts := analyzer.Options{DryRun: cfg.DryRun}
	if cfg.Progress {
		opts.Progress = os.Stderr
	}

	startTime := time.Now()
	results, err := analyzer.NewArchiver(client, evaluator, logger, opts).Run(context.Background())
	if err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}

	summary := analyzer.Summarize(results, time.Since(startTime))
	logger.Info("run finished",
		zap.Int("total", summary.Total),
		zap.Int("already_archived", summary.AlreadyArchived),
		zap.Int("exempt", summary.Exempt),
		zap.Int("not_eligible", summary.NotEligible),
		zap.Int("archived", summary.Archived),
		zap.Int("would_archive", summary.WouldArchive),
		zap.Int("failed", summary.Failed),
		zap.Duration("elapsed", summary.Elapsed))

	report(os.Stderr, cfg, results, summary)
}

// report prints the colored summary unless silent mode is enabled
func report(w io.Writer, cfg config.Config, results []analyzer.Result, summary analyzer.Summary) {
	if cfg.Silent {
		return
	}
	analyzer.OutputResults(w, results, summary)
}

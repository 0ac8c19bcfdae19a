package analyzer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// Result is the outcome of one repository in a run
type Result struct {
	Name            string
	Decision        Decision
	AlreadyArchived bool
	Archived        bool
	DryRun          bool
	Err             error
}

// Options configures an Archiver
type Options struct {
	// DryRun logs archivable repositories without archiving them.
	DryRun bool
	// Progress, when set, receives a terminal progress bar.
	Progress io.Writer
}

// Archiver walks every repository of the provider and archives the dormant ones.
type Archiver struct {
	provider  Provider
	evaluator *Evaluator
	logger    *zap.Logger
	opts      Options
}

// NewArchiver creates an Archiver
func NewArchiver(provider Provider, evaluator *Evaluator, logger *zap.Logger, opts Options) *Archiver {
	return &Archiver{
		provider:  provider,
		evaluator: evaluator,
		logger:    logger,
		opts:      opts,
	}
}

// Run evaluates every repository in enumeration order, one at a time.
// Only a failed enumeration is returned as an error; per-repository failures end up in the results.
func (a *Archiver) Run(ctx context.Context) ([]Result, error) {
	repos, err := a.provider.Repositories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}

	a.logger.Info("found repositories",
		zap.Int("count", len(repos)),
		zap.Duration("threshold", a.evaluator.Policy().Threshold),
		zap.Bool("dry_run", a.opts.DryRun))

	bar := a.newProgressBar(len(repos))
	startTime := time.Now()

	results := make([]Result, 0, len(repos))
	for i, repo := range repos {
		results = append(results, a.process(ctx, repo))

		if bar != nil {
			elapsed := time.Since(startTime)
			timePerRepo := elapsed / time.Duration(i+1)
			remaining := timePerRepo * time.Duration(len(repos)-i-1)

			bar.Describe(fmt.Sprintf("⚡ Checking repositories [%s elapsed, %s remaining]",
				formatDuration(elapsed), formatDuration(remaining)))
			_ = bar.Add(1)
		}
	}

	return results, nil
}

func (a *Archiver) process(ctx context.Context, repo Repository) Result {
	r := Result{Name: repo.FullName()}

	if repo.Archived() {
		r.AlreadyArchived = true
		a.logger.Info("skipping repository",
			zap.String("repo", r.Name),
			zap.String("reason", "already archived"))
		return r
	}

	r.Decision = a.evaluator.Evaluate(ctx, repo)
	if r.Decision != Archivable {
		a.logger.Info("skipping repository",
			zap.String("repo", r.Name),
			zap.Stringer("decision", r.Decision))
		return r
	}

	return a.archive(ctx, repo, r)
}

func (a *Archiver) newProgressBar(total int) *progressbar.ProgressBar {
	if a.opts.Progress == nil || total == 0 {
		return nil
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(a.opts.Progress),
		progressbar.OptionEnableColorCodes(false),
		progressbar.OptionSetDescription("⚡ Checking repositories"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "|",
			BarEnd:        "|",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("repos"),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintf(a.opts.Progress, "\n%s\n", color.New(color.FgGreen).Sprint("✅ Run complete!"))
		}),
	)
}

// formatDuration returns a human-readable string for the given duration
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)

	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}

	m := d / time.Minute
	d -= m * time.Minute

	if m < 60 {
		return fmt.Sprintf("%dm %ds", m, int(d.Seconds()))
	}

	h := m / 60
	m -= h * 60

	return fmt.Sprintf("%dh %dm", h, m)
}

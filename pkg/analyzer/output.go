package analyzer

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/samber/lo"
)

// Summary counts the outcomes of a run
type Summary struct {
	Total           int
	AlreadyArchived int
	Exempt          int
	NotEligible     int
	Archived        int
	WouldArchive    int
	Failed          int
	Elapsed         time.Duration
}

// Summarize tallies results.
func Summarize(results []Result, elapsed time.Duration) Summary {
	evaluated := lo.Filter(results, func(r Result, _ int) bool { return !r.AlreadyArchived })

	return Summary{
		Total:           len(results),
		AlreadyArchived: len(results) - len(evaluated),
		Exempt:          lo.CountBy(evaluated, func(r Result) bool { return r.Decision == Exempt }),
		NotEligible:     lo.CountBy(evaluated, func(r Result) bool { return r.Decision == NotEligible }),
		Archived:        lo.CountBy(evaluated, func(r Result) bool { return r.Archived }),
		WouldArchive:    lo.CountBy(evaluated, func(r Result) bool { return r.DryRun }),
		Failed:          lo.CountBy(evaluated, func(r Result) bool { return r.Err != nil }),
		Elapsed:         elapsed,
	}
}

// DisplayBanner prints the tool banner unless silent mode is enabled
func DisplayBanner(w io.Writer, silent bool) {
	if silent {
		return
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	purple := color.New(color.FgMagenta).SprintFunc()
	blue := color.New(color.FgBlue).SprintFunc()
	white := color.New(color.FgHiWhite, color.Bold).SprintFunc()

	fmt.Fprintln(w)
	fmt.Fprintln(w, blue("╭─────────────────────────────────────────────────────────────╮"))
	fmt.Fprintln(w, blue("│")+"                                                             "+blue("│"))
	fmt.Fprintln(w, blue("│")+"   "+purple("📦")+white(" DORMANT REPOSITORY ARCHIVER ")+purple("📦")+"                       "+blue("│"))
	fmt.Fprintln(w, blue("│")+"                                                             "+blue("│"))
	fmt.Fprintln(w, blue("╰─────────────────────────────────────────────────────────────╯"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, yellow("✦ Archiving repositories without recent activity ✦"))
	fmt.Fprintln(w, cyan("Add a .NOARCHIVE file or any topic to keep a repository out of reach"))
	fmt.Fprintln(w)
}

// OutputResults prints the end-of-run summary followed by the repositories that changed or failed
func OutputResults(w io.Writer, results []Result, s Summary) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(w, "\n📊 Run finished in %s\n", formatDuration(s.Elapsed))
	fmt.Fprintf(w, "Total repositories: %d\n", s.Total)
	fmt.Fprintf(w, "Already archived: %d\n", s.AlreadyArchived)
	fmt.Fprintf(w, "Exempt: %d\n", s.Exempt)
	fmt.Fprintf(w, "Still active: %d\n", s.NotEligible)
	if s.WouldArchive > 0 {
		fmt.Fprintf(w, "%s %d\n", yellow("🔎 Would archive (dry run):"), s.WouldArchive)
	}
	fmt.Fprintf(w, "%s %d\n", green("📦 Archived:"), s.Archived)
	fmt.Fprintf(w, "%s %d\n", red("❌ Failed:"), s.Failed)

	changed := lo.Filter(results, func(r Result, _ int) bool { return r.Archived || r.DryRun || r.Err != nil })
	if len(changed) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Repositories:")
	fmt.Fprintln(w, "---------------------")
	for _, r := range changed {
		switch {
		case r.Err != nil:
			fmt.Fprintf(w, "- %s %s (%v)\n", r.Name, red("failed"), r.Err)
		case r.DryRun:
			fmt.Fprintf(w, "- %s %s\n", r.Name, yellow("would be archived"))
		default:
			fmt.Fprintf(w, "- %s %s\n", r.Name, green("archived"))
		}
	}
}

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inovally/diagnostico/internal/config"
	"github.com/inovally/diagnostico/internal/diagnosis"
	"github.com/inovally/diagnostico/internal/profile"
	"github.com/inovally/diagnostico/internal/render"
	"github.com/inovally/diagnostico/internal/report"
	"github.com/inovally/diagnostico/internal/schedule"
	"github.com/inovally/diagnostico/internal/schema"
	"github.com/inovally/diagnostico/internal/scoreset"
)

type checkFlags struct {
	format    string
	out       string
	failBelow int
	verbose   bool
}

func newCheckCmd(a *app) *cobra.Command {
	f := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [scores-file]",
		Short: "Classify a score set and render the diagnostic report",
		Long: "Classify a score set and render the diagnostic report.\n" +
			"Without a scores file the built-in demonstration set is used.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runCheck(path, f, a.cfg, a.logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", "json", "Output format: json, md or html")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.String("profile", profile.DefaultName, "Profile name")
	flags.Bool("strict", false, "Fail when scores do not match the indicator catalog")
	flags.IntVar(&f.failBelow, "fail-below", 0, "Exit 2 if the overall percentage is below this value")
	flags.BoolVar(&f.verbose, "verbose", false, "Log processing steps to stderr")

	return cmd
}

func runCheck(scoresPath string, f *checkFlags, cfg *config.Config, logger *zap.Logger, stdout, stderr io.Writer) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	verbose := func(msg string, fields ...zap.Field) {
		if f.verbose {
			logger.Info(msg, fields...)
		}
	}

	switch f.format {
	case "json", "md", "html":
	default:
		return exitError(3, "unknown format: %s", f.format)
	}

	// 1. Load scores
	scores := scoreset.Default()
	var file, hash string
	if scoresPath != "" {
		verbose("Loading scores", zap.String("path", scoresPath))
		sf, err := scoreset.Load(scoresPath)
		if err != nil {
			return exitError(3, "failed to load scores: %v", err)
		}
		scores, file, hash = sf.Scores, filepath.Base(sf.FilePath), sf.Hash
	} else {
		verbose("No scores file given, using demonstration set")
	}

	// 2. Load profile
	verbose("Loading profile", zap.String("profile", cfg.Dashboard.Profile))
	prof, err := profile.LoadBuiltin(cfg.Dashboard.Profile)
	if err != nil {
		return exitError(3, "failed to load profile: %v", err)
	}

	// 3. Catalog validation
	findings := schema.ValidateScores(scores)
	if len(findings) > 0 && cfg.Server.Strict {
		fmt.Fprintln(stderr, "Score validation errors:")
		for _, e := range findings {
			fmt.Fprintf(stderr, "  %s\n", e)
		}
		return exitError(3, "scores failed validation (--strict)")
	}
	verbose("Scores validated", zap.Int("findings", len(findings)))

	// 4. Scheduling link
	var link schedule.Link
	if cfg.Schedule.BaseURL != "" {
		link, err = schedule.New(cfg.Schedule.BaseURL, prof.Schedule.MessageTemplate)
		if err != nil {
			return exitError(3, "invalid scheduling link: %v", err)
		}
	}

	// 5. Classify and build
	rep, err := report.Build(report.Options{
		Scores:     scores,
		Profile:    prof,
		Link:       link,
		ScoresFile: file,
		ScoresHash: hash,
		Version:    version,
	})
	if err != nil {
		if errors.Is(err, diagnosis.ErrInvalidInput) {
			return exitError(3, "invalid scores: %v", err)
		}
		return fmt.Errorf("failed to build report: %w", err)
	}
	for _, e := range findings {
		rep.Warnings = append(rep.Warnings, e.Error())
	}
	verbose("Classified",
		zap.Int("overall_percentage", rep.Summary.OverallPercentage),
		zap.String("level", rep.Summary.Level),
		zap.Int("positive", rep.Summary.PositiveCount),
		zap.Int("improvement", rep.Summary.ImprovementCount),
	)

	// 6. Validate the document
	if err := validateReport(rep, stderr); err != nil {
		return err
	}

	// 7. Output
	var buf bytes.Buffer
	switch f.format {
	case "json":
		err = render.JSON(&buf, rep)
	case "md":
		buf.WriteString(render.Markdown(rep))
	case "html":
		err = render.HTML(&buf, rep, render.HTMLOptions{})
	}
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}

	if f.out != "" {
		verbose("Writing output", zap.String("path", f.out))
		if err := os.WriteFile(f.out, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if _, err := stdout.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	// 8. Exit code based on --fail-below
	if f.failBelow > 0 && rep.Summary.OverallPercentage < f.failBelow {
		return exitError(2, "overall percentage %d%% is below %d%%", rep.Summary.OverallPercentage, f.failBelow)
	}
	return nil
}

// validateReport checks the finished document before it is written. A
// failure exits 5.
func validateReport(rep *report.Report, stderr io.Writer) error {
	reportErrs, err := schema.ValidateReport(rep)
	if err != nil {
		return fmt.Errorf("failed to validate report: %w", err)
	}
	if len(reportErrs) > 0 {
		fmt.Fprintln(stderr, "Report schema validation errors:")
		for _, e := range reportErrs {
			fmt.Fprintf(stderr, "  %s\n", e)
		}
		return exitError(5, "report failed schema validation")
	}
	return nil
}

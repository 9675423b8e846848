package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/inovally/diagnostico/internal/config"
	"github.com/inovally/diagnostico/internal/profile"
	"github.com/inovally/diagnostico/internal/schedule"
	"github.com/inovally/diagnostico/internal/scoreset"
	"github.com/inovally/diagnostico/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagnostic dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, a.cfg, a.logger)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":8080", "Listen address")
	flags.String("scores", "", "Scores file (default: demonstration set)")
	flags.Bool("watch", false, "Reload the scores file when it changes")
	flags.String("profile", profile.DefaultName, "Profile name")
	flags.Bool("strict", false, "Reject scores that do not match the indicator catalog")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	prof, err := profile.LoadBuiltin(cfg.Dashboard.Profile)
	if err != nil {
		return exitError(3, "failed to load profile: %v", err)
	}

	var link schedule.Link
	if cfg.Schedule.BaseURL != "" {
		link, err = schedule.New(cfg.Schedule.BaseURL, prof.Schedule.MessageTemplate)
		if err != nil {
			return exitError(3, "invalid scheduling link: %v", err)
		}
	}

	srv, err := server.New(server.Options{
		Profile:     prof,
		Link:        link,
		Strict:      cfg.Server.Strict,
		Version:     version,
		ActionRate:  rate.Limit(cfg.RateLimit.RPS),
		ActionBurst: cfg.RateLimit.Burst,
		Logger:      logger,

		TrustedProxies: cfg.Server.TrustedProxies,
	})
	if err != nil {
		return err
	}
	defer srv.Close()

	path := cfg.Dashboard.ScoresFile
	var lastHash string
	if path == "" {
		if err := srv.SetScores(scoreset.Default(), "", ""); err != nil {
			return exitError(3, "invalid demonstration scores: %v", err)
		}
	} else {
		f, err := scoreset.Load(path)
		if err != nil {
			return exitError(3, "failed to load scores: %v", err)
		}
		if err := srv.SetScores(f.Scores, f.FilePath, f.Hash); err != nil {
			return exitError(3, "invalid scores: %v", err)
		}
		lastHash = f.Hash
	}

	g, gctx := errgroup.WithContext(ctx)
	if path != "" && cfg.Dashboard.Watch {
		w := scoreset.NewWatcher(path, cfg.Dashboard.Debounce, srv.Load, logger)
		w.SetLastHash(lastHash)
		g.Go(func() error { return w.Run(gctx) })
	}
	g.Go(func() error {
		return srv.Run(gctx, cfg.Server.Addr, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout)
	})
	return g.Wait()
}

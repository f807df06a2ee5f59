package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/efa2d19/dailynator/pkg/cli/config"
	httpctrl "github.com/efa2d19/dailynator/pkg/controller/http"
	"github.com/efa2d19/dailynator/pkg/domain/types"
	"github.com/efa2d19/dailynator/pkg/service/scheduler"
	"github.com/efa2d19/dailynator/pkg/usecase"
	"github.com/efa2d19/dailynator/pkg/utils/errutil"
	"github.com/efa2d19/dailynator/pkg/utils/logging"
	"github.com/efa2d19/dailynator/pkg/utils/safe"
)

func cmdServe() *cli.Command {
	var addr string
	var appCfg config.App
	var repoCfg config.Repository
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("DAILYNATOR_ADDR"),
			Destination: &addr,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server and session scheduler",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			appConfig, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load app configuration")
			}

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize slack service")
			}

			// The scheduler fires sessions through the use cases, and the
			// channel commands reconcile the scheduler. Both sides exist
			// before either runs, so the late bind of uc is safe.
			var uc *usecase.UseCases
			sched := scheduler.New(repo, slackSvc, func(ctx context.Context, channelID types.ChannelID) {
				if err := uc.Daily.Start(ctx, channelID); err != nil {
					_ = errutil.Handle(ctx, err, "daily session failed")
				}
			})

			uc = usecase.New(repo, slackSvc,
				usecase.WithScheduler(sched),
				usecase.WithPalette(appConfig.Palette),
				usecase.WithSkipTokens(appConfig.SkipTokens),
				usecase.WithDefaultQuestions(appConfig.DefaultQuestions),
			)

			// Install triggers for channels that already have a schedule
			if err := sched.Reconcile(ctx); err != nil {
				return goerr.Wrap(err, "failed to install channel schedules")
			}
			sched.Start()
			defer sched.Stop()

			var httpOpts []httpctrl.Options
			if slackCfg.IsWebhookConfigured() {
				eventHandler := httpctrl.NewSlackEventHandler(uc, slackSvc)
				commandHandler := httpctrl.NewSlackCommandHandler(uc, slackSvc)
				httpOpts = append(httpOpts, httpctrl.WithSlackWebhook(eventHandler, commandHandler, slackCfg.SigningSecret()))
				logging.Default().Info("Slack webhook handlers enabled")
			} else {
				logging.Default().Warn("Slack signing secret not configured, webhook endpoints disabled")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				// Create shutdown context with timeout
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				// Attempt graceful shutdown
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}

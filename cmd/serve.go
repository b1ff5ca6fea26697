package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/arise/internal/api"
	"github.com/abhisek/arise/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the midnight quest reset",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		cmd.SetContext(ctx)

		return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
			if port, _ := cmd.Flags().GetInt("port"); port != 0 {
				rt.cfg.HTTPPort = port
			}
			return serve(ctx, rt)
		})
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "HTTP port (overrides ARISE_HTTP_PORT)")
}

func serve(ctx context.Context, rt *runtime) error {
	loc, err := rt.cfg.Location()
	if err != nil {
		return err
	}
	sched, err := scheduler.New(scheduler.Config{
		Spec:     rt.cfg.QuestResetSpec,
		Location: loc,
	}, rt.eng, rt.log)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.Deps{
		Engine:      rt.eng,
		Transcriber: rt.transcriber,
		Gatherer:    rt.registry,
		Log:         rt.log,
		Version:     version,
	})

	server := &http.Server{
		Addr:              rt.cfg.GetHTTPAddr(),
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rt.log.Info().Int("port", rt.cfg.HTTPPort).Str("version", version).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		sched.Start(gctx)
		<-sched.Done()
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		rt.log.Info().Msg("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			rt.log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		rt.log.Info().Msg("Server exited")
		return nil
	})

	return g.Wait()
}

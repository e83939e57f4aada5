// sentry-server runs the interpreter backend: it turns free-form chat
// messages into conversational replies or structured commands and serves
// them over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"sentry/internal/config"
	"sentry/internal/interpreter"
	"sentry/internal/llm"
	"sentry/internal/logging"
	"sentry/internal/server"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		addr     string
		provider string
		model    string
		debug    bool
	)

	cmd := &cobra.Command{
		Use:          "sentry-server",
		Short:        "Sentry interpreter backend",
		Long:         "Serves the Sentry assistant's natural-language interpreter over HTTP.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if provider != "" {
				cfg.Provider = provider
			}
			if model != "" {
				cfg.Model = model
			}
			if debug {
				cfg.LogLevel = "debug"
			}
			return run(cmd.Context(), cfg, debug)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :3000)")
	cmd.Flags().StringVar(&provider, "provider", "", "LLM provider: gemini or openai")
	cmd.Flags().StringVarP(&model, "model", "m", "", "model name")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "debug logging and gin debug mode")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, debug bool) error {
	logging.SetLevel(logging.ParseLevel(cfg.LogLevel))
	logger := logging.NewComponentLogger("server")
	logger.Info("starting sentry-server on %s (provider %s, model %s)", cfg.Addr, cfg.Provider, cfg.Model)

	client, err := llm.New(ctx, llm.Config{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.LLMTimeout,
	}, logging.NewComponentLogger("llm"))
	if err != nil {
		return fmt.Errorf("build LLM client: %w", err)
	}

	interp := interpreter.New(client, logging.NewComponentLogger("interpreter"))
	srv := server.New(server.Config{Addr: cfg.Addr, Debug: debug}, interp, logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx)
	})
	return g.Wait()
}

package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jacoelho/jsonschema"
	"github.com/jacoelho/jsonschema/internal/server"
)

type serveFlags struct {
	addr         string
	readTimeout  time.Duration
	writeTimeout time.Duration
	maxBody      int64
	bestEffort   bool
}

func newServeCmd(global *globalFlags, stderr io.Writer) *cobra.Command {
	var flags serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve schema validation over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(stderr, global.logLevel)
			if err != nil {
				return err
			}
			policy := jsonschema.DialectStrict
			if flags.bestEffort {
				policy = jsonschema.DialectBestEffort
			}
			srv := server.New(server.Config{
				Logger: logger,
				Addr:   flags.addr,
				LoadOptions: jsonschema.NewLoadOptions().
					WithLogger(logger).
					WithDialectPolicy(policy).
					WithFetcher(newRemoteFetcher(os.Getenv)),
				MaxBodyBytes: flags.maxBody,
				ReadTimeout:  flags.readTimeout,
				WriteTimeout: flags.writeTimeout,
			})
			ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.addr, "addr", ":8080", "listen address")
	f.DurationVar(&flags.readTimeout, "read-timeout", 15*time.Second, "HTTP read timeout")
	f.DurationVar(&flags.writeTimeout, "write-timeout", 15*time.Second, "HTTP write timeout")
	f.Int64Var(&flags.maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body size in bytes")
	f.BoolVar(&flags.bestEffort, "best-effort", false, "fall back on unknown $schema values and ignore unsupported keywords")
	return cmd
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/felixgeelhaar/antivibe/internal/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve hints over the Model Context Protocol",
		Long:  "Serve hints over the Model Context Protocol on stdio, or on HTTP with --http.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd, nil)
			if err != nil {
				return err
			}

			server := mcpserver.NewServer(mcpserver.Config{Service: svc, Version: Version})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if addr, _ := cmd.Flags().GetString("http"); addr != "" {
				return ignoreCanceled(server.ServeHTTP(ctx, addr))
			}
			return ignoreCanceled(server.ServeStdio(ctx))
		},
	}

	cmd.Flags().String("http", "", "Listen address for the HTTP transport instead of stdio")
	return cmd
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

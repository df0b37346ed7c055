package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/felixgeelhaar/antivibe/internal/config"
	"github.com/felixgeelhaar/antivibe/internal/hint"
	"github.com/felixgeelhaar/antivibe/internal/knowledge"
	"github.com/spf13/cobra"
)

// knowledgeBase resolves --knowledge, then the config file, then the embedded tables
func knowledgeBase(cmd *cobra.Command) (*knowledge.Base, error) {
	path, _ := cmd.Flags().GetString("knowledge")
	if path == "" {
		cfg, err := config.LoadLocalConfig()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		path = cfg.Knowledge.Path
	}

	kb, err := knowledge.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load knowledge base: %w", err)
	}
	return kb, nil
}

// newService builds a hint service for local commands. Logs go to stderr
// only when ANTIVIBE_LOG_LEVEL asks for them.
func newService(cmd *cobra.Command, src hint.Source) (*hint.Service, error) {
	kb, err := knowledgeBase(cmd)
	if err != nil {
		return nil, err
	}

	handler := slog.DiscardHandler
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv("ANTIVIBE_LOG_LEVEL"))); err == nil {
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	}

	return hint.NewService(hint.Config{
		Knowledge: kb,
		Source:    src,
		Logger:    slog.New(handler),
	}), nil
}

// Package cli defines the cobra commands for the coach binary.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/easeaico/chat-coach/internal/coach"
	"github.com/easeaico/chat-coach/internal/config"
	"github.com/easeaico/chat-coach/internal/models"
	"github.com/easeaico/chat-coach/internal/prompt"
	"github.com/easeaico/chat-coach/internal/storage"
)

var (
	verbose bool
	version = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "coach",
	Short: "Reply coach for dating chats",
	Long: `Coach reads a screenshot of a dating conversation, summarizes it,
and suggests replies tuned to the contact's history and your goal.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(contextCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(serveCmd)
}

// app bundles the wired dependencies shared by every command.
type app struct {
	cfg   config.Config
	store *storage.Store
	svc   *coach.Service
}

func openApp(ctx context.Context) (*app, error) {
	cfg := config.Load()
	setupLogging(cfg)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	gateway, err := models.NewGateway(ctx, cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	composer, err := prompt.NewComposer(cfg.HistoryLimit, loc)
	if err != nil {
		store.Close()
		return nil, err
	}

	svc := coach.NewService(store.Sessions, gateway, composer, cfg.MaxImageBytes)
	if _, err := svc.Bootstrap(ctx); err != nil {
		store.Close()
		return nil, err
	}

	slog.Debug("coach ready", "provider", cfg.Provider, "chat_model", cfg.ChatModel, "store", cfg.StoreDriver)
	return &app{cfg: cfg, store: store, svc: svc}, nil
}

func (a *app) Close() {
	a.store.Close()
}

// setupLogging writes to stderr so command output on stdout stays clean.
func setupLogging(cfg config.Config) {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

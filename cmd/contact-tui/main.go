// cmd/contact-tui/main.go
//
// ApoConsult – terminal entry point.
//
// Runs the same contact workflow as the web host inside a bubbletea
// program.  Configuration, secrets, and transport selection follow the web
// binary exactly; only the surface differs.  Logs go to the rotating file
// only, since the terminal belongs to the UI.
//
// Usage
//
//	contact-tui [--root DIR] [--open=false]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yanizio/apoconsult/internal/config"
	"github.com/yanizio/apoconsult/internal/contact"
	"github.com/yanizio/apoconsult/internal/logger"
	"github.com/yanizio/apoconsult/internal/message"
	"github.com/yanizio/apoconsult/internal/tui"
	"github.com/yanizio/apoconsult/internal/vault"
)

const serverEnvPath = "/usr/local/etc/apoconsult/global.env"

func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

func main() {
	var (
		root string
		open bool
	)

	rootCmd := &cobra.Command{
		Use:           "contact-tui",
		Short:         "Send an ApoConsult inquiry from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, root, open)
		},
	}
	rootCmd.Flags().StringVar(&root, "root", "", "Project root holding conf/ and logs/ (default: APO_ROOT or discovered)")
	rootCmd.Flags().BoolVar(&open, "open", true, "Start with the contact box open")

	loadEnv()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "contact-tui:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, root string, open bool) error {
	if root == "" {
		root = config.RootDir()
	}

	var res config.SecretResolver
	if vault.Enabled() {
		vc, err := vault.New(ctx, nil)
		if err != nil {
			return fmt.Errorf("vault: %w", err)
		}
		res = vc
	}

	cfg, err := config.LoadFrom(ctx, root, res)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(root, false, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("start logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	subjects := make([]tui.Subject, 0, len(cfg.Contact.Subjects))
	for _, s := range cfg.Contact.Subjects {
		subjects = append(subjects, tui.Subject{Value: s.Value, Label: s.Label})
	}

	log.Infow("contact-tui start", "open", open)
	err = tui.Run(ctx, tui.Options{
		Transport: message.ForConfig(cfg, log.Named("transport")),
		Workflow: contact.Options{
			SubmitLabel:     cfg.Contact.SubmitLabel,
			PendingLabel:    cfg.Contact.PendingLabel,
			SuccessMessage:  cfg.Contact.SuccessMessage,
			FailureMessage:  cfg.Contact.FailureMessage,
			RejectMessage:   cfg.Contact.RejectMessage,
			Timeout:         cfg.Contact.Timeout,
			NotificationTTL: cfg.Contact.NotificationTTL,
			Logger:          log.Named("contact"),
		},
		Subjects: subjects,
		Open:     open,
	})
	if err != nil {
		log.Errorw("contact-tui", "err", err)
		return err
	}
	log.Infow("contact-tui exit")
	return nil
}

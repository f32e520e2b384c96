package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/compkit/compkit/internal/branding"
	"github.com/compkit/compkit/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	pluginPaths []string
	noPreload   bool
	logLevel    string
)

var printer = message.NewPrinter(language.English)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` builds a component tree from your settings, loads plugins into it
and lets you inspect the result: the tree, registered types, plugins and libraries.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		return setupLogging(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&pluginPaths, "plugin-path", nil, "Plugin directory searched before the configured ones (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&noPreload, "no-preload", false, "Do not load plugins.preload")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log.level (debug, info, warn, error)")
}

// setupLogging installs a text handler on stderr at the configured level.
func setupLogging(cmd *cobra.Command) error {
	level := logLevel
	if level == "" {
		level = config.Get(config.KeyLogLevel)
	}
	lvl, err := config.LogSettings{Level: level}.SlogLevel()
	if err != nil {
		return err
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
	return nil
}

// Execute runs the root command with build info injected via ldflags.
// Interrupts cancel the command's context.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", branding.CLIName(), err)
		return err
	}
	return nil
}

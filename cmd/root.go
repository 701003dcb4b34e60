package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhubert/thinkprompt/internal/app"
	"github.com/zhubert/thinkprompt/internal/config"
	"github.com/zhubert/thinkprompt/internal/demo"
	"github.com/zhubert/thinkprompt/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	configPath            string
	thinkDelay            time.Duration
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "thinkprompt",
	Short: "Interactive prompt that streams its thinking above the input line",
	Long: `thinkprompt is an interactive terminal prompt. Each line you enter is answered
after a streamed "thinking" phase shown in a collapsible box above the prompt.

Type /help inside the prompt to list the demo commands.`,
	RunE:          runPrompt,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ~/.thinkprompt/config.json)")
	rootCmd.Flags().DurationVar(&thinkDelay, "delay", demo.DefaultDelay, "Pause between streamed thinking chunks")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("thinkprompt %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("thinkprompt %s\n", version)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.LoadDefault()
}

func runPrompt(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if cfg.App.Version == "" && version != "" && version != "dev" {
		cfg.App.Version = version
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	d := demo.New(cfg, thinkDelay)
	s, err := app.New(cfg,
		app.WithHandler(d.Handle),
		app.WithCompletions(d.Completions()...),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting session %s (config %s)", s.ID(), cfg.Path())
	return s.Run(ctx)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

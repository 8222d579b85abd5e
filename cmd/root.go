package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/menubar/internal/app"
	"github.com/zjrosen/menubar/internal/config"
	"github.com/zjrosen/menubar/internal/log"
	"github.com/zjrosen/menubar/internal/watcher"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin, so the
	// OSC 11 reply cannot leak into the input stream.
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const localConfigPath = ".menubar/config.yaml"

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "menubar",
	Short: "A terminal application menu driven by menu templates",
	Long: `menubar compiles a menu template (YAML, TOML or JSON) into an application
menu and runs it in the terminal: a menu bar opened with F10 or the mouse,
keyboard accelerators, and standard roles such as undo, copy, zoom and quit
acting on a small text document.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .menubar/config.yaml, then ~/.config/menubar/config.yaml)")
	rootCmd.PersistentFlags().StringP("template", "t", "",
		"menu template file (.yaml, .toml or .json); built-in template when empty")
	rootCmd.PersistentFlags().String("platform", "",
		"platform whose conventions to follow: darwin, linux or windows")
	rootCmd.PersistentFlags().String("app-name", "",
		"application name used in role labels")
	rootCmd.PersistentFlags().Bool("debug", false,
		"write a debug log")
	rootCmd.Flags().BoolP("watch", "w", false,
		"reload the template when the file changes")

	_ = viper.BindPFlag("template", rootCmd.PersistentFlags().Lookup("template"))
	_ = viper.BindPFlag("platform", rootCmd.PersistentFlags().Lookup("platform"))
	_ = viper.BindPFlag("app_name", rootCmd.PersistentFlags().Lookup("app-name"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("watch", rootCmd.Flags().Lookup("watch"))
}

func initConfig() {
	cfg = loadConfig(viper.GetViper(), cfgFile)
}

// loadConfig resolves settings from defaults, the config file, MENUBAR_*
// environment variables and bound flags, in increasing precedence.
func loadConfig(v *viper.Viper, explicit string) config.Config {
	defaults := config.Defaults()
	v.SetDefault("app_name", defaults.AppName)
	v.SetDefault("log.max_size_mb", defaults.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", defaults.Log.MaxBackups)
	v.SetDefault("ui.show_accelerators", defaults.UI.ShowAccelerators)
	v.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	v.SetDefault("flags", defaults.Flags)

	v.SetEnvPrefix("MENUBAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		// Config lookup order:
		// 1. .menubar/config.yaml (current directory)
		// 2. ~/.config/menubar/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			v.SetConfigFile(localConfigPath)
		} else {
			if dir := config.DefaultDir(); dir != "" {
				v.AddConfigPath(dir)
			}
			v.SetConfigName("config")
			v.SetConfigType("yaml")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.ErrorErr(log.CatConfig, "reading config failed", err, "file", v.ConfigFileUsed())
		}
	}

	var c config.Config
	if err := v.Unmarshal(&c); err != nil {
		log.ErrorErr(log.CatConfig, "decoding config failed", err)
		return defaults
	}
	return c
}

// configPathForSave returns the file settings changes are written to,
// creating the default config when none was loaded.
func configPathForSave() string {
	if used := viper.ConfigFileUsed(); used != "" {
		if _, err := os.Stat(used); err == nil {
			return used
		}
	}
	path := filepath.Join(config.DefaultDir(), "config.yaml")
	if config.DefaultDir() == "" {
		path = localConfigPath
	}
	if err := config.WriteDefaultConfig(path); err != nil {
		log.ErrorErr(log.CatConfig, "writing default config failed", err, "path", path)
		return ""
	}
	return path
}

func initLogging(c config.Config) (func(), error) {
	if !c.Debug {
		return func() {}, nil
	}
	path := c.Log.File
	if path == "" {
		path = config.DefaultLogFile()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	cleanup, err := log.Init(path, log.Options{
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MinLevel:   log.LevelDebug,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing log: %w", err)
	}
	log.Info(log.CatConfig, "menubar starting", "version", version, "template", c.Template, "platform", c.Platform)
	return cleanup, nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cleanupLog, err := initLogging(cfg)
	if err != nil {
		return err
	}
	defer cleanupLog()

	rt, err := newRuntime(cfg)
	if err != nil {
		return err
	}
	defer rt.shutdown()

	deps := app.Deps{
		Session:    rt.session,
		Compiler:   rt.compiler,
		Dispatcher: rt.dispatcher,
		AccelCache: rt.cache,
	}
	if cfg.Watch {
		w, err := watcher.New(watcher.DefaultConfig(cfg.Template))
		if err != nil {
			return fmt.Errorf("watching template: %w", err)
		}
		deps.Watcher = w
	}

	zone.NewGlobal()
	model := app.New(cfg, configPathForSave(), rt.root, deps)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// shutdownTimeout bounds flushing of buffered spans on exit.
const shutdownTimeout = 5 * time.Second

func shutdownContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), shutdownTimeout)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

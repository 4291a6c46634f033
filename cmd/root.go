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

	"github.com/zjrosen/jjview/internal/app"
	"github.com/zjrosen/jjview/internal/config"
	"github.com/zjrosen/jjview/internal/jj"
	"github.com/zjrosen/jjview/internal/log"
	"github.com/zjrosen/jjview/internal/tracing"
	"github.com/zjrosen/jjview/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// startupTimeout bounds `jj root` and `jj config list` before the UI starts.
const startupTimeout = 10 * time.Second

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
	cfgErr    error
)

var rootCmd = &cobra.Command{
	Use:   "jjview",
	Short: "A terminal viewer for jj repositories",
	Long: `jjview shows the jj log next to the output of jj show for the selected
change. Output is cached per change, diff format and width, so moving around
the log only runs jj for what has not been seen yet.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .jjview/config.yaml, then ~/.config/jjview/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write a debug log (JJVIEW_LOG, default debug.log)")
	rootCmd.Flags().StringP("path", "p", "",
		"path inside the jj workspace to view (default: current directory)")
	rootCmd.Flags().StringP("revset", "r", "",
		"revset to list (default: jj's revsets.log)")
	rootCmd.Flags().String("jj-bin", "",
		"jj binary to run")
	rootCmd.Flags().Bool("no-auto-refresh", false,
		"disable reloading the log when the repository changes")

	_ = viper.BindPFlag("path", rootCmd.Flags().Lookup("path"))
	_ = viper.BindPFlag("revset", rootCmd.Flags().Lookup("revset"))
	_ = viper.BindPFlag("jj_bin", rootCmd.Flags().Lookup("jj-bin"))
}

func initConfig() {
	cfg, cfgErr = loadConfig(viper.GetViper(), cfgFile)
}

// setDefaults registers every default so environment variables and
// Unmarshal see the full key set.
func setDefaults(v *viper.Viper) {
	defaults := config.Defaults()
	v.SetDefault("jj_bin", defaults.JJBin)
	v.SetDefault("auto_refresh", defaults.AutoRefresh)
	v.SetDefault("auto_refresh_debounce", defaults.AutoRefreshDebounce)
	v.SetDefault("log_cache_ttl", defaults.LogCacheTTL)
	v.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)
}

// loadConfig reads the config file and decodes it over the defaults.
//
// Lookup order when explicit is empty:
//  1. .jjview/config.yaml (current directory)
//  2. ~/.config/jjview/config.yaml (user config)
//
// When neither exists a commented default is written to the user config.
func loadConfig(v *viper.Viper, explicit string) (config.Config, error) {
	setDefaults(v)
	v.SetEnvPrefix("JJVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch {
	case explicit != "":
		if !fileExists(explicit) {
			return config.Config{}, fmt.Errorf("config file %s not found", explicit)
		}
		v.SetConfigFile(explicit)
	case fileExists(config.LocalConfigPath()):
		v.SetConfigFile(config.LocalConfigPath())
	default:
		if dir := config.UserConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config.Config{}, fmt.Errorf("reading config: %w", err)
		}
		writeUserDefault(v)
	}

	var c config.Config
	if err := v.Unmarshal(&c); err != nil {
		return config.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}

// writeUserDefault creates the user config on first run. Failure only
// means running on defaults.
func writeUserDefault(v *viper.Viper) {
	dir := config.UserConfigDir()
	if dir == "" {
		return
	}
	path := filepath.Join(dir, config.ConfigFileName)
	if err := config.WriteDefaultConfig(path); err != nil {
		return
	}
	v.SetConfigFile(path)
	_ = v.ReadInConfig()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// initLogging opens the debug log when --debug or JJVIEW_DEBUG is set.
// The returned func closes it.
func initLogging() (func(), error) {
	if !debugFlag && os.Getenv("JJVIEW_DEBUG") == "" {
		return func() {}, nil
	}
	logPath := os.Getenv("JJVIEW_LOG")
	if logPath == "" {
		logPath = config.DefaultLogFile
	}
	cleanup, err := log.InitWithTeaLog(logPath, "jjview")
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "jjview starting", "version", version, "debug", true, "logPath", logPath)
	return cleanup, nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	if cfgErr != nil {
		return cfgErr
	}

	cleanupLog, err := initLogging()
	if err != nil {
		return err
	}
	defer cleanupLog()

	if noAutoRefresh, _ := cmd.Flags().GetBool("no-auto-refresh"); noAutoRefresh {
		cfg.AutoRefresh = false
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	workDir := cfg.Path
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "Flushing traces failed", err)
		}
	}()

	var exec jj.Executor = jj.NewRealExecutor(cfg.JJBin, workDir)
	if provider.Enabled() {
		exec = jj.NewTracingExecutor(exec, provider.Tracer())
	}

	root, jjCfg, err := inspectWorkspace(cmd.Context(), exec)
	if err != nil {
		return err
	}

	cfg.ApplyJJ(jjCfg)
	styles.ApplyHighlight(cfg.UI.HighlightColor)
	zone.NewGlobal()

	model := app.New(app.Options{
		Executor:      exec,
		Config:        cfg,
		JJConfig:      jjCfg,
		WorkspaceRoot: root,
		Tracer:        provider.Tracer(),
		Debug:         debugFlag || os.Getenv("JJVIEW_DEBUG") != "",
	})
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// inspectWorkspace finds the workspace root and reads jj's configuration.
// An unreadable jj config is not fatal; jjview falls back to its defaults.
func inspectWorkspace(ctx context.Context, exec jj.Executor) (string, jj.Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	root, err := exec.Root(ctx)
	if err != nil {
		if errors.Is(err, jj.ErrNotJJRepo) {
			return "", jj.Config{}, fmt.Errorf("%w\nRun 'jj git init' to create one", err)
		}
		return "", jj.Config{}, fmt.Errorf("locating workspace: %w", err)
	}

	jjCfg, err := jj.LoadConfig(ctx, exec)
	if err != nil {
		log.Warn(log.CatConfig, "Ignoring jj config", "error", err)
		jjCfg = jj.Config{}
	}
	log.Info(log.CatConfig, "Workspace found", "root", root)
	return root, jjCfg, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

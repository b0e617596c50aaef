package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"shapeshift/internal/definition"
	"shapeshift/internal/logging"
	"shapeshift/internal/tracing"
)

// config mirrors the keys bound into viper.
type config struct {
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	Output string `mapstructure:"output"`
	Trace  bool   `mapstructure:"trace"`
}

// app is the state shared by all subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config
	logger  *slog.Logger
	tracing *tracing.Provider
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: logging.Discard()}

	cmd := &cobra.Command{
		Use:   "shapeshift",
		Short: "Run data transformation pipelines",
		Long: `shapeshift compiles transformers declared in YAML or HCL definition files
into function chains and runs them over JSON or YAML data.

Configuration is read from flags, SHAPESHIFT_* environment variables
(SHAPESHIFT_LOG_LEVEL, SHAPESHIFT_OUTPUT, ...) and an optional
.shapeshift.yaml in the current directory.`,
		Version:            version,
		SilenceUsage:       true,
		PersistentPreRunE:  func(cmd *cobra.Command, _ []string) error { return a.init(cmd) },
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error { return a.close(cmd.Context()) },
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default: ./.shapeshift.yaml)")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.String("log-format", "text", "log format: text or json")
	flags.StringP("output", "o", "json", "output format: json or yaml")
	flags.Bool("trace", false, "print compile spans to stderr")

	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = a.v.BindPFlag("output", flags.Lookup("output"))
	_ = a.v.BindPFlag("trace", flags.Lookup("trace"))

	cmd.AddCommand(newRunCmd(a), newCheckCmd(a), newFunctionsCmd(a))

	return cmd
}

// init loads configuration and sets up logging and tracing.
func (a *app) init(cmd *cobra.Command) error {
	a.v.SetEnvPrefix("SHAPESHIFT")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.SetConfigName(".shapeshift")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	if err := a.v.Unmarshal(&a.cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}

	a.logger = logging.New(a.cfg.Log.Level, a.cfg.Log.Format, cmd.ErrOrStderr())

	provider, err := tracing.NewProvider(tracing.Config{Enabled: a.cfg.Trace, Writer: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}

	a.tracing = provider

	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("loaded config", "path", used)
	}

	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))

	return nil
}

func (a *app) close(ctx context.Context) error {
	if a.tracing == nil {
		return nil
	}

	return a.tracing.Shutdown(ctx)
}

// build loads the definition file at path and builds its transformers.
func (a *app) build(ctx context.Context, path string) (*definition.Pipelines, error) {
	f, err := definition.LoadFile(path)
	if err != nil {
		return nil, err
	}

	return definition.Build(f, nil, definition.WithLogger(a.logger), definition.WithContext(ctx))
}

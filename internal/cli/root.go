package cli

import (
	"context"

	"github.com/spf13/cobra"

	"resumescore/internal/common"
	"resumescore/internal/config"
	"resumescore/internal/errors"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "resumescore",
		Short: "Score, validate and export structured resumes",
		Long: `resumescore checks a structured resume (JSON) for ATS readability.
It scores the resume with a compact or detailed strategy, validates every
section, ranks improvements, and exports text, CSV, JSON, HTML or Markdown.
The same engine is available over HTTP with "resumescore serve".`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newScoreCmd(),
		newValidateCmd(),
		newSuggestCmd(),
		newAnalyzeCmd(),
		newExportCmd(),
		newSampleCmd(),
		newWatchCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the CLI with cfg and logger available to every subcommand.
func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger, args ...string) error {
	ctx = withDependencies(ctx, cfg, logger)
	rootCmd := NewRootCmd()
	if args != nil {
		rootCmd.SetArgs(args)
	}
	return rootCmd.ExecuteContext(ctx)
}

func withDependencies(ctx context.Context, cfg *config.Config, logger *errors.Logger) context.Context {
	ctx = context.WithValue(ctx, configKey, cfg)
	return context.WithValue(ctx, loggerKey, logger)
}

func getConfigFromContext(ctx context.Context) (*config.Config, error) {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok && cfg != nil {
		return cfg, nil
	}
	return nil, errors.NewInternalError("MISSING_CONFIG", "config not found in context", nil)
}

func getLoggerFromContext(ctx context.Context) (*errors.Logger, error) {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok && logger != nil {
		return logger, nil
	}
	return nil, errors.NewInternalError("MISSING_LOGGER", "logger not found in context", nil)
}

func dependencies(cmd *cobra.Command) (*config.Config, *errors.Logger, error) {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// newRunner wires file reading and output to the command's streams.
func newRunner(cmd *cobra.Command, cfg *config.Config, logger *errors.Logger) *common.Runner {
	return &common.Runner{
		Logger:        logger,
		FileProcessor: common.NewFileProcessor(logger, cfg.App.MaxFileSize),
		OutputHandler: common.NewOutputHandlerWithWriter(logger, cmd.OutOrStdout()),
	}
}

// addOutputFlags registers --output and --format on cmd.
func addOutputFlags(cmd *cobra.Command, cc *common.CommandConfig) {
	cmd.Flags().StringVarP(&cc.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&cc.OutputFormat, "format", "", "Output format: json, text, or markdown (default from config)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return common.NewOutputHandler(nil).GetSupportedFormats(), cobra.ShellCompDirectiveNoFileComp
	})
}

// resolveFormat applies the configured default and checks the result.
func resolveFormat(cc *common.CommandConfig, cfg *config.Config, supported []string) error {
	if cc.OutputFormat == "" {
		cc.OutputFormat = cfg.App.DefaultFormat
	}
	return common.ValidateOutputFormat(cc.OutputFormat, supported)
}

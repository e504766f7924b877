package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"resumescore/internal/engine"
	"resumescore/internal/export"
)

func newExportCmd() *cobra.Command {
	var (
		format, template, theme, output string
	)

	cmd := &cobra.Command{
		Use:   "export [resume.json]",
		Short: "Export a resume as text, CSV, JSON, HTML or Markdown",
		Long: `Export a resume. HTML output takes a layout template and a colour theme;
other formats ignore both. Use -o auto to write to the suggested filename
(<name>_resume_<date>.<ext>).

Templates: ` + strings.Join(export.Templates(), ", ") + `
Themes:    ` + strings.Join(export.Themes(), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := dependencies(cmd)
			if err != nil {
				return err
			}
			runner := newRunner(cmd, cfg, logger)

			doc, err := runner.FileProcessor.ReadResume(args[0])
			if err != nil {
				return err
			}

			svc := engine.NewService(cfg.App, nil, logger)
			rendered, err := svc.Export(cmd.Context(), doc, format, export.Options{Template: template, Theme: theme})
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			written, err := runner.OutputHandler.WriteRendered(rendered, output)
			if err != nil {
				return err
			}
			if written != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", rendered.Format, written)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Export format: "+strings.Join(export.DefaultRegistry().Formats(), ", "))
	cmd.Flags().StringVar(&template, "template", "", "HTML template (default from config)")
	cmd.Flags().StringVar(&theme, "theme", "", "HTML colour theme (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", `Output file path, or "auto" for the suggested name (default: stdout)`)

	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(export.DefaultRegistry().Formats()))
	_ = cmd.RegisterFlagCompletionFunc("template", fixedCompletion(export.Templates()))
	_ = cmd.RegisterFlagCompletionFunc("theme", fixedCompletion(export.Themes()))
	return cmd
}

func fixedCompletion(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

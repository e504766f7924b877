package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"resumescore/internal/common"
	"resumescore/internal/engine"
	"resumescore/internal/errors"
	"resumescore/internal/resume"
	"resumescore/internal/types"
)

var errInvalidResume = errors.NewValidationError(errors.ErrCodeInvalidDocument, "resume has error-level issues", nil)

// reportCommand describes a file-in, report-out command.
type reportCommand[Output any] struct {
	use, short, long string
	strategyFlag     bool
	run              func(ctx context.Context, svc *engine.Service, doc *resume.Document, strategy string) (Output, error)
	after            func(Output) error
}

func (rc reportCommand[Output]) build() *cobra.Command {
	var (
		cc       common.CommandConfig
		strategy string
	)

	cmd := &cobra.Command{
		Use:   rc.use,
		Short: rc.short,
		Long:  rc.long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := dependencies(cmd)
			if err != nil {
				return err
			}
			runner := newRunner(cmd, cfg, logger)
			if err := resolveFormat(&cc, cfg, runner.OutputHandler.GetSupportedFormats()); err != nil {
				return err
			}

			svc := engine.NewService(cfg.App, nil, logger)
			var result Output
			err = common.RunResumeCommand(cmd.Context(), runner, cc, args[0],
				func(ctx context.Context, doc *resume.Document) (Output, error) {
					var err error
					result, err = rc.run(ctx, svc, doc, strategy)
					return result, err
				})
			if err != nil {
				return fmt.Errorf("%s failed: %w", cmd.Name(), err)
			}
			if rc.after != nil {
				return rc.after(result)
			}
			return nil
		},
	}

	addOutputFlags(cmd, &cc)
	if rc.strategyFlag {
		cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "Scoring strategy: compact or detailed (default from config)")
	}
	return cmd
}

func newScoreCmd() *cobra.Command {
	return reportCommand[types.ScoreOutput]{
		use:   "score [resume.json]",
		short: "Compute the ATS score of a resume",
		long: `Score a resume with the compact strategy (the preview score, out of 80
possible points) or the detailed strategy (the score card, out of 100).
The output includes the label band, the per-rule breakdown and suggestions.`,
		strategyFlag: true,
		run: func(ctx context.Context, svc *engine.Service, doc *resume.Document, strategy string) (types.ScoreOutput, error) {
			return svc.Score(ctx, doc, strategy)
		},
	}.build()
}

func newValidateCmd() *cobra.Command {
	var strict bool
	cmd := reportCommand[types.ValidateOutput]{
		use:   "validate [resume.json]",
		short: "Validate every section of a resume",
		long: `Validate personal info, summary, experience, education, projects, skills
and links. Reports issues by severity, the completeness percentage and a
checklist of missing sections.`,
		run: func(ctx context.Context, svc *engine.Service, doc *resume.Document, _ string) (types.ValidateOutput, error) {
			return svc.Validate(ctx, doc), nil
		},
		after: func(out types.ValidateOutput) error {
			if strict && !out.IsValid {
				return errInvalidResume
			}
			return nil
		},
	}.build()
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when the resume has error-level issues")
	return cmd
}

func newSuggestCmd() *cobra.Command {
	return reportCommand[types.SuggestOutput]{
		use:   "suggest [resume.json]",
		short: "List the top improvements for a resume",
		run: func(ctx context.Context, svc *engine.Service, doc *resume.Document, _ string) (types.SuggestOutput, error) {
			return svc.Suggest(ctx, doc), nil
		},
	}.build()
}

func newAnalyzeCmd() *cobra.Command {
	return reportCommand[types.AnalysisOutput]{
		use:          "analyze [resume.json]",
		short:        "Score, validate and rank improvements in one report",
		strategyFlag: true,
		run: func(ctx context.Context, svc *engine.Service, doc *resume.Document, strategy string) (types.AnalysisOutput, error) {
			return svc.Analyze(ctx, doc, strategy)
		},
	}.build()
}

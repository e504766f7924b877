package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"resumescore/internal/common"
	"resumescore/internal/errors"
	"resumescore/internal/resume"
)

func newSampleCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print the built-in sample resume as JSON",
		Long: `Print the built-in sample resume in the canonical JSON shape. It is a
starting point for a new resume and a fixture for the other commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := dependencies(cmd)
			if err != nil {
				return err
			}
			raw, err := json.MarshalIndent(resume.Sample(), "", "  ")
			if err != nil {
				return errors.NewInternalError("ENCODE_FAILED", "failed to encode sample resume", err)
			}
			content := string(raw) + "\n"

			if output == "" {
				_, err = cmd.OutOrStdout().Write([]byte(content))
				return err
			}
			return common.NewFileProcessor(logger, 0).WriteFile(output, content)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

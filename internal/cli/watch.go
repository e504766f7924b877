package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"resumescore/internal/common"
	"resumescore/internal/config"
	"resumescore/internal/engine"
	"resumescore/internal/errors"
	"resumescore/internal/store"
	"resumescore/internal/watch"
)

type watchOptions struct {
	strategy string
	debounce time.Duration
	save     bool
	key      string
	jsonOut  bool
}

func newWatchCmd() *cobra.Command {
	var opts watchOptions

	cmd := &cobra.Command{
		Use:   "watch [resume.json]",
		Short: "Re-score a resume every time the file changes",
		Long: `Watch a resume file and print a fresh score and validation summary after
each save. With --save every successfully parsed version is also written to
the configured store (store.backend) under --key.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := dependencies(cmd)
			if err != nil {
				return err
			}
			return runWatch(cmd.Context(), cmd.OutOrStdout(), cfg, logger, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", "", "Scoring strategy: compact or detailed (default from config)")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", watch.DefaultDebounce, "Quiet period before re-scoring")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Persist each version to the configured store")
	cmd.Flags().StringVar(&opts.key, "key", store.DefaultKey, "Store key used with --save")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print one JSON object per re-score")
	return cmd
}

func runWatch(ctx context.Context, out io.Writer, cfg *config.Config, logger *errors.Logger, file string, opts watchOptions) error {
	svc := engine.NewService(cfg.App, nil, logger)

	var tracker *store.Tracker
	if opts.save {
		if err := store.ValidateKey(opts.key); err != nil {
			return err
		}
		if err := config.ApplyVaultSecrets(cfg, logger); err != nil {
			return err
		}
		st, err := store.New(ctx, cfg.Store, nil, logger)
		if err != nil {
			return err
		}
		defer closeStore(st, logger)

		tracker = store.NewTracker(st, opts.key, nil, logger)
		if _, err := tracker.Load(ctx); err != nil {
			return err
		}
	}

	rescorer := watch.NewRescorer(svc, common.NewFileProcessor(logger, cfg.App.MaxFileSize), tracker, opts.strategy, logger)
	rescore := func(ctx context.Context) {
		res, err := rescorer.Rescore(ctx, file)
		if err != nil {
			logger.LogError(err, "Re-score failed", "file", file)
			fmt.Fprintf(out, "error: %v\n", err)
			return
		}
		printWatchResult(out, res, opts.jsonOut)
	}

	rescore(ctx)
	return watch.NewWatcher(file, opts.debounce, rescore, logger).Run(ctx)
}

func printWatchResult(out io.Writer, res watch.Result, jsonOut bool) {
	if jsonOut {
		_ = json.NewEncoder(out).Encode(res)
		return
	}

	valid := "no"
	if res.Validation.IsValid {
		valid = "yes"
	}
	line := fmt.Sprintf("[%s] %s %d/100 (%s) | valid: %s | completeness: %d%%",
		res.At.Format(time.TimeOnly), res.Score.Strategy, res.Score.Score, res.Score.Label,
		valid, res.Validation.Completeness)
	if res.Saved {
		line += " | saved"
	}
	fmt.Fprintln(out, line)
}

package watch

import (
	"context"
	"time"

	"resumescore/internal/common"
	"resumescore/internal/engine"
	"resumescore/internal/errors"
	"resumescore/internal/store"
	"resumescore/internal/types"
)

// Result is the outcome of one re-score.
type Result struct {
	File       string               `json:"file"`
	At         time.Time            `json:"at"`
	Score      types.ScoreOutput    `json:"score"`
	Validation types.ValidateOutput `json:"validation"`
	Saved      bool                 `json:"saved"`
}

// Rescorer loads a resume file and runs validation and scoring on it,
// optionally persisting the document through a Tracker.
type Rescorer struct {
	engine   *engine.Service
	files    *common.FileProcessor
	tracker  *store.Tracker
	strategy string
	logger   *errors.Logger
	now      func() time.Time
}

// NewRescorer builds a Rescorer. tracker may be nil to skip saving; when
// set it must already be loaded or saves will be refused.
func NewRescorer(svc *engine.Service, files *common.FileProcessor, tracker *store.Tracker, strategy string, logger *errors.Logger) *Rescorer {
	if logger == nil {
		logger = errors.Discard()
	}
	return &Rescorer{
		engine:   svc,
		files:    files,
		tracker:  tracker,
		strategy: strategy,
		logger:   logger,
		now:      time.Now,
	}
}

// Rescore reads file and scores it. Save failures are logged, not
// returned, so a flaky store never stops scoring.
func (r *Rescorer) Rescore(ctx context.Context, file string) (Result, error) {
	doc, err := r.files.ReadResume(file)
	if err != nil {
		return Result{}, err
	}

	score, err := r.engine.Score(ctx, doc, r.strategy)
	if err != nil {
		return Result{}, err
	}
	res := Result{
		File:       file,
		At:         r.now(),
		Score:      score,
		Validation: r.engine.Validate(ctx, doc),
	}

	if r.tracker != nil {
		if err := r.tracker.Save(ctx, doc); err != nil {
			r.logger.LogError(err, "Failed to save resume", "file", file)
		} else {
			res.Saved = true
		}
	}

	r.logger.Info("Resume re-scored",
		"file", file,
		"strategy", score.Strategy,
		"score", score.Score,
		"label", score.Label,
		"valid", res.Validation.IsValid,
		"completeness", res.Validation.Completeness,
		"saved", res.Saved)
	return res, nil
}

package store

import (
	"context"
	stderrors "errors"
	"sync"

	"resumescore/internal/errors"
	"resumescore/internal/resume"
)

// State is the load state of a Tracker.
type State int

const (
	NotLoaded State = iota
	Loaded
)

func (s State) String() string {
	if s == Loaded {
		return "loaded"
	}
	return "not_loaded"
}

// Tracker owns one key in a Store. It refuses to save until it has loaded,
// so a fresh process never overwrites stored data with its defaults.
type Tracker struct {
	store    Store
	key      string
	fallback func() *resume.Document
	logger   *errors.Logger

	mu    sync.Mutex
	state State
	doc   *resume.Document
}

// NewTracker tracks key in s. fallback supplies the document used when
// nothing usable is stored; nil means resume.Empty.
func NewTracker(s Store, key string, fallback func() *resume.Document, logger *errors.Logger) *Tracker {
	if fallback == nil {
		fallback = resume.Empty
	}
	if logger == nil {
		logger = errors.Discard()
	}
	return &Tracker{store: s, key: key, fallback: fallback, logger: logger}
}

// Load reads the stored document. A missing key, or a stored value that no
// longer decodes, yields the fallback document. Backend failures are
// returned and leave the tracker not loaded.
func (t *Tracker) Load(ctx context.Context) (*resume.Document, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	doc, err := t.store.Load(ctx, t.key)
	switch {
	case err == nil:
	case stderrors.Is(err, ErrNotLoaded):
		doc = t.fallback()
	case errors.IsType(err, errors.ErrorTypeValidation):
		t.logger.LogError(err, "Failed to restore resume data", "key", t.key)
		doc = t.fallback()
	default:
		return nil, err
	}

	t.doc = doc
	t.state = Loaded
	return doc.Clone(), nil
}

// Save persists doc. It fails with ErrNotLoaded until Load has succeeded.
func (t *Tracker) Save(ctx context.Context, doc *resume.Document) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != Loaded {
		return notLoaded(t.key)
	}
	if err := t.store.Save(ctx, t.key, doc); err != nil {
		return err
	}
	t.doc = doc.Clone()
	return nil
}

func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Current returns a copy of the last loaded or saved document, or nil
// before Load.
func (t *Tracker) Current() *resume.Document {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.doc == nil {
		return nil
	}
	return t.doc.Clone()
}

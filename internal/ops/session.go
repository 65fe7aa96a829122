// Package ops holds the application state: one Ops aggregate and the
// discrete updates allowed on each of its collections. Every update is
// applied to a copy, persisted, and only then made current, so the
// in-memory state always equals the last successful save.
package ops

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"github.com/zulandar/vanops/internal/ident"
	"github.com/zulandar/vanops/internal/models"
)

// Errors returned by Session updates.
var (
	ErrNotFound     = errors.New("ops: not found")
	ErrDuplicate    = errors.New("ops: duplicate id")
	ErrInvalidValue = errors.New("ops: invalid value")
)

// Saver persists a whole aggregate. *store.Gateway satisfies it.
type Saver interface {
	Save(*models.Ops) error
}

// Store loads and saves the aggregate.
type Store interface {
	Saver
	Load() (*models.Ops, error)
}

// Session owns the current aggregate.
type Session struct {
	ops   *models.Ops
	saver Saver
	log   zerolog.Logger

	// NewID mints record IDs. Nil uses ident.New.
	NewID func(prefix string) string
}

// NewSession wraps an already loaded aggregate. A nil ops starts empty.
func NewSession(ops *models.Ops, saver Saver, log zerolog.Logger) *Session {
	if ops == nil {
		ops = models.Empty()
	}
	return &Session{ops: ops, saver: saver, log: log}
}

// Open loads the stored aggregate, starting empty when nothing usable is
// stored.
func Open(st Store, log zerolog.Logger) (*Session, error) {
	loaded, err := st.Load()
	if err != nil {
		return nil, fmt.Errorf("ops: open: %w", err)
	}
	if loaded == nil {
		log.Info().Msg("starting with empty state")
	}
	return NewSession(loaded, st, log), nil
}

// Ops returns a copy of the current aggregate.
func (s *Session) Ops() *models.Ops {
	return s.ops.Clone()
}

func (s *Session) newID(prefix string) string {
	if s.NewID != nil {
		return s.NewID(prefix)
	}
	return ident.New(prefix)
}

// apply runs fn on a copy of the state, saves the result and swaps it in.
// When fn or the save fails the current state is unchanged.
func (s *Session) apply(action string, fn func(next *models.Ops) error) error {
	next := s.ops.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.saver.Save(next); err != nil {
		s.log.Error().Err(err).Str("action", action).Msg("save failed; change discarded")
		return fmt.Errorf("ops: %s: %w", action, err)
	}
	s.ops = next
	s.log.Debug().Str("action", action).Msg("state updated")
	return nil
}

// Replace swaps in a whole aggregate, as after a backup import.
func (s *Session) Replace(ops *models.Ops) error {
	if ops == nil {
		return fmt.Errorf("%w: nil aggregate", ErrInvalidValue)
	}
	return s.apply("replace", func(next *models.Ops) error {
		*next = *ops.Clone()
		return nil
	})
}

// Reset clears every collection.
func (s *Session) Reset() error {
	return s.apply("reset", func(next *models.Ops) error {
		*next = *models.Empty()
		return nil
	})
}

func notFound(kind, id string) error {
	return wrapf(ErrNotFound, "%s %q", kind, id)
}

func wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

func invalid(field string, value any) error {
	return fmt.Errorf("%w: %s %v", ErrInvalidValue, field, value)
}

// nonNegative rejects negative, NaN and infinite quantities.
func nonNegative(field string, v *float64) error {
	if v != nil && !validQty(*v) {
		return invalid(field, *v)
	}
	return nil
}

func validQty(f float64) bool {
	return f >= 0 && !math.IsNaN(f) && !math.IsInf(f, 0)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setStrings(dst *[]string, v *[]string) {
	if v != nil {
		*dst = append([]string{}, (*v)...)
	}
}

// prepend returns s with v at the front.
func prepend[T any](s []T, v T) []T {
	return append([]T{v}, s...)
}

// Package store persists the Ops aggregate in a named storage slot and
// handles backup files and partial imports.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/zulandar/vanops/internal/models"
	"github.com/zulandar/vanops/internal/normalize"
)

// Errors returned when imported text cannot be used.
var (
	ErrInvalidJSON  = errors.New("store: invalid JSON")
	ErrInvalidShape = errors.New("store: invalid backup shape")
)

// SlotStore is the storage the gateway writes through. *db.Slots
// satisfies it.
type SlotStore interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
}

// Gateway loads and saves the whole aggregate under one key.
type Gateway struct {
	slots   SlotStore
	key     string
	appName string
	log     zerolog.Logger
}

// New returns a Gateway for key. appName prefixes exported backup files.
func New(slots SlotStore, key, appName string, log zerolog.Logger) *Gateway {
	return &Gateway{slots: slots, key: key, appName: appName, log: log}
}

// Key returns the storage slot key.
func (g *Gateway) Key() string { return g.key }

// Load reads and normalizes the stored aggregate. A missing slot, or one
// whose content is not a JSON object, yields (nil, nil) so callers fall
// back to a fresh aggregate. Only storage failures are returned as errors.
//
// When normalization changes the stored document, for example by minting
// missing IDs, the result is written back so later loads see the same IDs.
func (g *Gateway) Load() (*models.Ops, error) {
	data, ok, err := g.slots.Get(g.key)
	if err != nil {
		return nil, fmt.Errorf("store: load %s: %w", g.key, err)
	}
	if !ok {
		g.log.Debug().Str("key", g.key).Msg("no stored state")
		return nil, nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		g.log.Warn().Err(err).Str("key", g.key).Msg("stored state is not JSON; ignoring")
		return nil, nil
	}
	if _, isObject := raw.(map[string]any); !isObject {
		g.log.Warn().Str("key", g.key).Msg("stored state is not an object; ignoring")
		return nil, nil
	}
	ops := normalize.Ops(raw)
	g.writeBack(data, ops)
	return ops, nil
}

// writeBack saves ops when its encoding differs from the stored bytes. A
// failed write is logged; the next successful Save repairs the slot.
func (g *Gateway) writeBack(stored []byte, ops *models.Ops) {
	data, err := json.Marshal(ops)
	if err != nil || bytes.Equal(data, stored) {
		return
	}
	if err := g.slots.Put(g.key, data); err != nil {
		g.log.Warn().Err(err).Str("key", g.key).Msg("could not write back normalized state")
		return
	}
	g.log.Info().Str("key", g.key).Msg("normalized stored state")
}

// Save writes ops to the slot, replacing what was there.
func (g *Gateway) Save(ops *models.Ops) error {
	data, err := json.Marshal(ops)
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	if err := g.slots.Put(g.key, data); err != nil {
		return fmt.Errorf("store: save %s: %w", g.key, err)
	}
	g.log.Debug().Str("key", g.key).Int("bytes", len(data)).Msg("saved state")
	return nil
}

// BackupName returns the export file name for the given day.
func (g *Gateway) BackupName(now time.Time) string {
	return fmt.Sprintf("%s-backup-%s.json", g.appName, now.Format("2006-01-02"))
}

// Export writes a pretty-printed backup of ops into dir and returns its path.
func (g *Gateway) Export(ops *models.Ops, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("store: export: create %s: %w", dir, err)
	}
	path := filepath.Join(dir, g.BackupName(now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("store: export: %w", err)
	}
	if err := WriteBackup(f, ops); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("store: export: close %s: %w", path, err)
	}
	g.log.Info().Str("path", path).Msg("exported backup")
	return path, nil
}

// WriteBackup encodes ops as indented JSON.
func WriteBackup(w io.Writer, ops *models.Ops) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ops); err != nil {
		return fmt.Errorf("store: write backup: %w", err)
	}
	return nil
}

// Package ident generates short, human-legible record identifiers.
package ident

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record prefixes, one per entity kind.
const (
	PrefixWiringRun = "HC"
	PrefixPart      = "P"
	PrefixFuse      = "FZ"
	PrefixGuide     = "GUIDE"
	PrefixFolder    = "F"
	PrefixNode      = "N"
	PrefixStep      = "STEP"
	PrefixPhase     = "PH"
	PrefixTask      = "T"
)

// Generator builds IDs of the form PREFIX-TTTTRRRRRR: four hex digits from
// the millisecond clock followed by six random hex digits. Zero values fall
// back to time.Now and the uuid package's random source.
type Generator struct {
	Now  func() time.Time
	Rand io.Reader
}

// New returns a fresh ID with the given prefix.
func (g Generator) New(prefix string) string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	var u uuid.UUID
	if g.Rand != nil {
		var err error
		if u, err = uuid.NewRandomFromReader(g.Rand); err != nil {
			u = uuid.New()
		}
	} else {
		u = uuid.New()
	}

	// The first three bytes of a v4 UUID carry no version or variant bits.
	random := strings.ToUpper(hex.EncodeToString(u[:3]))
	return fmt.Sprintf("%s-%04X%s", prefix, uint16(now().UnixMilli()), random)
}

var std Generator

// New returns a fresh ID with the given prefix from the default generator.
func New(prefix string) string {
	return std.New(prefix)
}

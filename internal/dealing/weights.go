package dealing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lox/holdem-engine/poker"
)

// Mode selects which column of the weight table drives dealing.
type Mode string

const (
	ModeDense      Mode = "dense"
	ModeSuperDense Mode = "superDense"
)

// Modes lists every supported dealing mode.
var Modes = []Mode{ModeDense, ModeSuperDense}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDense, ModeSuperDense:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// WeightSource reports the configured probability weight of a hand class.
type WeightSource interface {
	Weight(classKey string, mode Mode) float64
}

// WeightEntry is one class's weight: either a single number used for every
// mode, or per-mode values.
type WeightEntry struct {
	All        *float64 `json:"-"`
	Dense      *float64 `json:"dense,omitempty"`
	SuperDense *float64 `json:"superDense,omitempty"`
}

// UnmarshalJSON accepts `1.5` or `{"dense": 1.5, "superDense": 0}`.
func (e *WeightEntry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var perMode struct {
			Dense      *float64 `json:"dense"`
			SuperDense *float64 `json:"superDense"`
		}
		if err := json.Unmarshal(data, &perMode); err != nil {
			return err
		}
		*e = WeightEntry{Dense: perMode.Dense, SuperDense: perMode.SuperDense}
		return nil
	}

	var w float64
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("weight must be a number or a per-mode object: %w", err)
	}
	*e = WeightEntry{All: &w}
	return nil
}

// MarshalJSON writes the entry back in the shape it was read.
func (e WeightEntry) MarshalJSON() ([]byte, error) {
	if e.All != nil {
		return json.Marshal(*e.All)
	}
	type perMode WeightEntry
	return json.Marshal(perMode(e))
}

// For returns the weight for mode, or 0 when the mode is not configured.
func (e WeightEntry) For(mode Mode) float64 {
	if e.All != nil {
		return *e.All
	}
	switch mode {
	case ModeDense:
		if e.Dense != nil {
			return *e.Dense
		}
	case ModeSuperDense:
		if e.SuperDense != nil {
			return *e.SuperDense
		}
	}
	return 0
}

// WeightTable maps class keys ("AKs") to weights. Missing keys weigh 0.
type WeightTable map[string]WeightEntry

// Weight implements WeightSource.
func (t WeightTable) Weight(classKey string, mode Mode) float64 {
	entry, ok := t[classKey]
	if !ok {
		return 0
	}
	return entry.For(mode)
}

// UnknownKeys returns keys that are not one of the 169 class keys.
func (t WeightTable) UnknownKeys() []string {
	valid := make(map[string]bool, poker.ClassCount)
	for _, k := range poker.ClassKeys() {
		valid[k] = true
	}
	var unknown []string
	for k := range t {
		if !valid[k] {
			unknown = append(unknown, k)
		}
	}
	return unknown
}

// ParseWeights decodes a weight document.
func ParseWeights(data []byte) (WeightTable, error) {
	var table WeightTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse weight table: %w", err)
	}
	return table, nil
}

// LoadWeights reads a weight document from disk.
func LoadWeights(path string) (WeightTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read weight table: %w", err)
	}
	table, err := ParseWeights(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// UniformWeights gives every class weight 1 in every mode, so each class is
// dealt in proportion to its combo count.
func UniformWeights() WeightTable {
	table := make(WeightTable, poker.ClassCount)
	for _, k := range poker.ClassKeys() {
		w := 1.0
		table[k] = WeightEntry{All: &w}
	}
	return table
}

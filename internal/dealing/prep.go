package dealing

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/lox/holdem-engine/poker"
)

// Combo is an unordered pair of hole cards.
type Combo [2]poker.Card

// Overlaps reports whether the combo uses any card in used.
func (c Combo) Overlaps(used map[poker.Card]bool) bool {
	return used[c[0]] || used[c[1]]
}

// WeightedKey is a class key with its effective weight, which is the
// configured weight times the number of combos in the class.
type WeightedKey struct {
	Key    string
	Weight float64
}

// ComboPrep is the precomputed sampling data for one mode.
type ComboPrep struct {
	Mode          Mode
	CombosByClass map[string][]Combo
	WeightedKeys  []WeightedKey
	TotalWeight   float64
}

// BuildPrep enumerates all 1326 combos, groups them by class, and keeps
// the classes with a positive weight under mode. Class order follows the
// enumeration order of the fixed deck so sampling is reproducible.
func BuildPrep(weights WeightSource, mode Mode) (*ComboPrep, error) {
	deck := poker.NewDeck()
	prep := &ComboPrep{
		Mode:          mode,
		CombosByClass: make(map[string][]Combo, poker.ClassCount),
	}

	var order []string
	for i := 0; i < len(deck); i++ {
		for j := i + 1; j < len(deck); j++ {
			key := poker.ClassKey(deck[i], deck[j])
			if _, ok := prep.CombosByClass[key]; !ok {
				order = append(order, key)
			}
			prep.CombosByClass[key] = append(prep.CombosByClass[key], Combo{deck[i], deck[j]})
		}
	}

	for _, key := range order {
		w := weights.Weight(key, mode)
		if w <= 0 {
			continue
		}
		effective := w * float64(len(prep.CombosByClass[key]))
		prep.WeightedKeys = append(prep.WeightedKeys, WeightedKey{Key: key, Weight: effective})
		prep.TotalWeight += effective
	}

	if len(prep.WeightedKeys) == 0 || prep.TotalWeight <= 0 {
		return nil, fmt.Errorf("%w: mode %s", ErrNoWeightedClasses, mode)
	}
	return prep, nil
}

// PrepCache builds each mode's ComboPrep once. Concurrent first requests for
// the same mode share a single build; failed builds are not cached.
type PrepCache struct {
	weights WeightSource

	mu    sync.RWMutex
	preps map[Mode]*ComboPrep
	group singleflight.Group
}

// NewPrepCache creates an empty cache over weights.
func NewPrepCache(weights WeightSource) *PrepCache {
	return &PrepCache{
		weights: weights,
		preps:   make(map[Mode]*ComboPrep),
	}
}

// Get returns the prep for mode, building it on first use.
func (c *PrepCache) Get(mode Mode) (*ComboPrep, error) {
	if prep := c.lookup(mode); prep != nil {
		return prep, nil
	}

	v, err, _ := c.group.Do(string(mode), func() (any, error) {
		// A build that finished between lookup and Do is already stored.
		if prep := c.lookup(mode); prep != nil {
			return prep, nil
		}
		prep, err := BuildPrep(c.weights, mode)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.preps[mode] = prep
		c.mu.Unlock()
		return prep, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ComboPrep), nil
}

func (c *PrepCache) lookup(mode Mode) *ComboPrep {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.preps[mode]
}

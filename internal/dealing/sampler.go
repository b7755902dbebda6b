package dealing

import "github.com/lox/holdem-engine/internal/randutil"

// DrawWeightedKey picks a key with probability proportional to its weight.
// Floating point drift past the last key falls back to the last key.
func DrawWeightedKey(src randutil.Source, keys []WeightedKey, total float64) string {
	if len(keys) == 0 {
		return ""
	}
	r := src.Float64() * total
	for _, k := range keys {
		r -= k.Weight
		if r < 0 {
			return k.Key
		}
	}
	return keys[len(keys)-1].Key
}

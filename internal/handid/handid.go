// Package handid generates the correlation ids attached to every deal.
//
// Ids are UUIDv7 values rendered as 26-character Crockford base32 strings
// (the TypeID suffix encoding), so they sort by creation time.
package handid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/lox/holdem-engine/internal/randutil"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Generator produces hand ids. The zero value uses crypto/rand.
type Generator struct {
	reader io.Reader
}

// NewGenerator returns a generator drawing the random bits from src.
// A nil src falls back to crypto/rand.
func NewGenerator(src randutil.Source) *Generator {
	if src == nil {
		return &Generator{}
	}
	return &Generator{reader: sourceReader{src: src}}
}

// Generate creates a new hand id.
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.reader != nil {
		id, err = uuid.NewV7FromReader(g.reader)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		panic("failed to generate hand id: " + err.Error())
	}
	return encodeBase32(id)
}

// encodeBase32 renders 128 bits as 26 characters, left padded with two zero
// bits so the first character is always 0-7.
func encodeBase32(data [16]byte) string {
	var out [26]byte
	for i := range out {
		var v byte
		for b := 0; b < 5; b++ {
			pos := i*5 + b - 2
			v <<= 1
			if pos >= 0 && data[pos/8]&(0x80>>(pos%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// Validate checks if a hand id is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("hand id must be exactly 26 characters, got %d", len(id))
	}

	// Check first character doesn't exceed 7 (to ensure it represents ≤ 128 bits)
	if id[0] > '7' {
		return fmt.Errorf("hand id first character must be 0-7, got %c", id[0])
	}

	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}

	return nil
}

// sourceReader adapts a randutil.Source to the io.Reader uuid expects.
type sourceReader struct {
	src randutil.Source
}

func (r sourceReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.src.IntN(256))
	}
	return len(p), nil
}

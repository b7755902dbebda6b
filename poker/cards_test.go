package poker

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/lox/holdem-engine/internal/randutil"
)

func TestCardCreation(t *testing.T) {
	t.Parallel()
	aceSpades := NewCard(Ace, Spades)
	if aceSpades.String() != "As" {
		t.Errorf("Expected 'As', got %s", aceSpades.String())
	}

	twoClubs := NewCard(Two, Clubs)
	if twoClubs.String() != "2c" {
		t.Errorf("Expected '2c', got %s", twoClubs.String())
	}
}

func TestParseCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		wantCard Card
		wantErr  bool
	}{
		{name: "ace of spades", input: "As", wantCard: NewCard(Ace, Spades)},
		{name: "two of hearts", input: "2h", wantCard: NewCard(Two, Hearts)},
		{name: "ten of diamonds", input: "Td", wantCard: NewCard(Ten, Diamonds)},
		{name: "king of clubs", input: "Kc", wantCard: NewCard(King, Clubs)},
		{name: "empty", input: "", wantErr: true},
		{name: "too long", input: "10h", wantErr: true},
		{name: "too short", input: "A", wantErr: true},
		{name: "lower case rank", input: "as", wantErr: true},
		{name: "upper case suit", input: "AS", wantErr: true},
		{name: "unknown rank", input: "1s", wantErr: true},
		{name: "unknown suit", input: "Ax", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCard(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCardID) {
					t.Fatalf("ParseCard(%q) error = %v, want ErrInvalidCardID", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCard(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.wantCard {
				t.Errorf("ParseCard(%q) = %v, want %v", tt.input, got, tt.wantCard)
			}
		})
	}
}

func TestCardIDRoundTrip(t *testing.T) {
	t.Parallel()
	for _, c := range NewDeck() {
		parsed, err := ParseCard(c.String())
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", c.String(), err)
		}
		if parsed != c {
			t.Errorf("round trip of %v gave %v", c, parsed)
		}
	}
}

func TestNewDeckOrder(t *testing.T) {
	t.Parallel()
	deck := NewDeck()
	if len(deck) != 52 {
		t.Fatalf("Expected 52 cards, got %d", len(deck))
	}

	want := []string{"As", "Ah", "Ad", "Ac", "Ks"}
	for i, id := range want {
		if deck[i].String() != id {
			t.Errorf("deck[%d] = %s, want %s", i, deck[i], id)
		}
	}
	if deck[51].String() != "2c" {
		t.Errorf("last card = %s, want 2c", deck[51])
	}

	seen := make(map[Card]bool)
	for _, c := range deck {
		if seen[c] {
			t.Errorf("duplicate card %v", c)
		}
		seen[c] = true
	}
}

func TestCardJSON(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal([]Card{MustParseCard("Qh"), MustParseCard("7c")})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `["Qh","7c"]` {
		t.Errorf("json = %s", data)
	}

	var cards []Card
	if err := json.Unmarshal([]byte(`["Qh","xx"]`), &cards); !errors.Is(err, ErrInvalidCardID) {
		t.Errorf("expected ErrInvalidCardID, got %v", err)
	}
}

func TestShuffledDeck(t *testing.T) {
	t.Parallel()
	d := NewShuffledDeck(randutil.New(42))
	if d.CardsRemaining() != 52 {
		t.Fatalf("Expected 52 cards, got %d", d.CardsRemaining())
	}

	seen := make(map[Card]bool)
	for i := 0; i < 26; i++ {
		for _, c := range d.Deal(2) {
			if seen[c] {
				t.Fatalf("card %v dealt twice", c)
			}
			seen[c] = true
		}
	}
	if d.CardsRemaining() != 0 {
		t.Errorf("Expected empty deck, got %d", d.CardsRemaining())
	}
	if d.Deal(1) != nil {
		t.Error("Deal on an empty deck should return nil")
	}

	// Same seed, same order
	a := NewShuffledDeck(randutil.New(7)).Deal(10)
	b := NewShuffledDeck(randutil.New(7)).Deal(10)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seeded decks diverge at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

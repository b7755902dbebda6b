package poker

import (
	"sort"
)

// HandType enumerates the categories of poker hands ordered from weakest to strongest.
type HandType uint8

const (
	HighCard HandType = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the category name used on the wire ("full-house").
func (t HandType) String() string {
	switch t {
	case HighCard:
		return "high-card"
	case Pair:
		return "one-pair"
	case TwoPair:
		return "two-pair"
	case ThreeOfAKind:
		return "three-of-a-kind"
	case Straight:
		return "straight"
	case Flush:
		return "flush"
	case FullHouse:
		return "full-house"
	case FourOfAKind:
		return "four-of-a-kind"
	case StraightFlush:
		return "straight-flush"
	default:
		return "unknown"
	}
}

// MarshalText encodes the category by name.
func (t HandType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// HandValue is the evaluated strength of the best five cards.
// It is only used for comparison and display.
type HandValue struct {
	Type HandType `json:"category"`
	// Ranks are the tie-break ranks in precedence order.
	Ranks []Rank `json:"ranks"`
	// Cards are the five cards making the hand.
	Cards []Card `json:"cards"`
}

// CategoryIndex returns the category as 0 (high card) through 8 (straight flush).
func (v HandValue) CategoryIndex() int {
	return int(v.Type)
}

// String returns a compact description like "full-house QQQJJ".
func (v HandValue) String() string {
	s := v.Type.String() + " "
	for _, r := range v.Ranks {
		s += r.String()
	}
	return s
}

// Evaluate returns the best five-card hand from the hole cards and up to five
// board cards.
func Evaluate(hole, board []Card) HandValue {
	cards := make([]Card, 0, len(hole)+len(board))
	cards = append(cards, hole...)
	cards = append(cards, board...)

	// Strongest first; ties keep suit order so results are stable.
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].Rank != cards[j].Rank {
			return cards[i].Rank > cards[j].Rank
		}
		return cards[i].Suit < cards[j].Suit
	})

	var counts [13]int
	var bySuit [4][]Card
	for _, c := range cards {
		counts[c.Rank]++
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}

	var flushCards []Card
	for _, suited := range bySuit {
		if len(suited) >= 5 {
			flushCards = suited
			break
		}
	}

	if flushCards != nil {
		if straight, ok := bestStraight(flushCards); ok {
			return HandValue{Type: StraightFlush, Ranks: cardRanks(straight), Cards: straight}
		}
	}

	var quads, trips, pairs []Rank
	for r := Ace; ; r-- {
		switch counts[r] {
		case 4:
			quads = append(quads, r)
		case 3:
			trips = append(trips, r)
		case 2:
			pairs = append(pairs, r)
		}
		if r == Two {
			break
		}
	}

	if len(quads) > 0 {
		q := quads[0]
		used := withRank(cards, q, 4)
		kick := kickers(cards, 1, q)
		return HandValue{
			Type:  FourOfAKind,
			Ranks: append([]Rank{q}, cardRanks(kick)...),
			Cards: append(used, kick...),
		}
	}

	if len(trips) > 0 && (len(pairs) > 0 || len(trips) > 1) {
		t := trips[0]
		// The paired part is the best pair, or a second set of trips.
		var p Rank
		switch {
		case len(pairs) == 0:
			p = trips[1]
		case len(trips) > 1 && trips[1] > pairs[0]:
			p = trips[1]
		default:
			p = pairs[0]
		}
		used := append(withRank(cards, t, 3), withRank(cards, p, 2)...)
		return HandValue{Type: FullHouse, Ranks: []Rank{t, p}, Cards: used}
	}

	if flushCards != nil {
		top := append([]Card(nil), flushCards[:5]...)
		return HandValue{Type: Flush, Ranks: cardRanks(top), Cards: top}
	}

	if straight, ok := bestStraight(cards); ok {
		return HandValue{Type: Straight, Ranks: cardRanks(straight), Cards: straight}
	}

	if len(trips) > 0 {
		t := trips[0]
		used := withRank(cards, t, 3)
		kick := kickers(cards, 2, t)
		return HandValue{
			Type:  ThreeOfAKind,
			Ranks: append([]Rank{t}, cardRanks(kick)...),
			Cards: append(used, kick...),
		}
	}

	if len(pairs) >= 2 {
		hi, lo := pairs[0], pairs[1]
		used := append(withRank(cards, hi, 2), withRank(cards, lo, 2)...)
		kick := kickers(cards, 1, hi, lo)
		return HandValue{
			Type:  TwoPair,
			Ranks: append([]Rank{hi, lo}, cardRanks(kick)...),
			Cards: append(used, kick...),
		}
	}

	if len(pairs) == 1 {
		p := pairs[0]
		used := withRank(cards, p, 2)
		kick := kickers(cards, 3, p)
		return HandValue{
			Type:  Pair,
			Ranks: append([]Rank{p}, cardRanks(kick)...),
			Cards: append(used, kick...),
		}
	}

	top := kickers(cards, 5)
	return HandValue{Type: HighCard, Ranks: cardRanks(top), Cards: top}
}

// CompareHandValues orders hands by category, then by tie-break ranks.
// Missing ranks compare as Two. Returns >0 if a wins, <0 if b wins, 0 for a tie.
func CompareHandValues(a, b HandValue) int {
	if a.Type != b.Type {
		return int(a.Type) - int(b.Type)
	}
	n := max(len(a.Ranks), len(b.Ranks))
	for i := 0; i < n; i++ {
		ar, br := Two, Two
		if i < len(a.Ranks) {
			ar = a.Ranks[i]
		}
		if i < len(b.Ranks) {
			br = b.Ranks[i]
		}
		if ar != br {
			return int(ar) - int(br)
		}
	}
	return 0
}

// bestStraight finds the highest five-rank run in cards (sorted strongest first).
// The wheel A-5-4-3-2 is only considered when no higher run exists.
func bestStraight(cards []Card) ([]Card, bool) {
	var byRank [13]*Card
	for i := range cards {
		if byRank[cards[i].Rank] == nil {
			byRank[cards[i].Rank] = &cards[i]
		}
	}

	for high := Ace; high >= Six; high-- {
		run := make([]Card, 0, 5)
		for r := high; r+4 >= high && byRank[r] != nil; r-- {
			run = append(run, *byRank[r])
			if len(run) == 5 {
				return run, true
			}
			if r == Two {
				break
			}
		}
	}

	wheel := []Rank{Five, Four, Three, Two, Ace}
	run := make([]Card, 0, 5)
	for _, r := range wheel {
		if byRank[r] == nil {
			return nil, false
		}
		run = append(run, *byRank[r])
	}
	return run, true
}

// withRank returns the first n cards of the given rank.
func withRank(cards []Card, r Rank, n int) []Card {
	out := make([]Card, 0, n)
	for _, c := range cards {
		if c.Rank == r && len(out) < n {
			out = append(out, c)
		}
	}
	return out
}

// kickers returns the n strongest cards whose rank is not excluded.
func kickers(cards []Card, n int, exclude ...Rank) []Card {
	out := make([]Card, 0, n)
	for _, c := range cards {
		if len(out) == n {
			break
		}
		skip := false
		for _, r := range exclude {
			if c.Rank == r {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, c)
		}
	}
	return out
}

func cardRanks(cards []Card) []Rank {
	ranks := make([]Rank, len(cards))
	for i, c := range cards {
		ranks[i] = c.Rank
	}
	return ranks
}

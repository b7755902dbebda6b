package poker

// ClassCount is the number of canonical starting-hand classes.
const ClassCount = 169

// ClassKey returns the starting-hand class of two hole cards: "AA" for
// pocket pairs, "AKs" / "AKo" for suited and offsuit hands. The higher rank
// always comes first, whatever the input order.
func ClassKey(c1, c2 Card) string {
	if c1.Rank == c2.Rank {
		return c1.Rank.String() + c2.Rank.String()
	}

	hi, lo := c1.Rank, c2.Rank
	if lo > hi {
		hi, lo = lo, hi
	}

	if c1.Suit == c2.Suit {
		return hi.String() + lo.String() + "s"
	}
	return hi.String() + lo.String() + "o"
}

// ClassKeys enumerates all 169 class keys, strongest ranks first:
// each pair, then its suited and offsuit hands against every lower rank.
func ClassKeys() []string {
	keys := make([]string, 0, ClassCount)
	for hi := Ace; ; hi-- {
		keys = append(keys, hi.String()+hi.String())
		for lo := hi; lo > Two; {
			lo--
			keys = append(keys, hi.String()+lo.String()+"s", hi.String()+lo.String()+"o")
		}
		if hi == Two {
			break
		}
	}
	return keys
}

// ComboCount returns the number of physical two-card combos realising a class:
// 6 for pairs, 4 for suited and 12 for offsuit hands. Unknown keys return 0.
func ComboCount(key string) int {
	switch len(key) {
	case 2:
		r1, ok1 := ParseRank(key[0])
		r2, ok2 := ParseRank(key[1])
		if ok1 && ok2 && r1 == r2 {
			return 6
		}
	case 3:
		r1, ok1 := ParseRank(key[0])
		r2, ok2 := ParseRank(key[1])
		if !ok1 || !ok2 || r1 <= r2 {
			return 0
		}
		switch key[2] {
		case 's':
			return 4
		case 'o':
			return 12
		}
	}
	return 0
}

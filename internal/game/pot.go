package game

// SplitPot divides amount among winners by floor division. The remainder
// goes to the first winner, so winners should be in seat-scan order.
// The returned shares line up with winners.
func SplitPot(amount int, winners []int) []int {
	if len(winners) == 0 {
		return nil
	}
	shares := make([]int, len(winners))
	each := amount / len(winners)
	for i := range shares {
		shares[i] = each
	}
	shares[0] += amount - each*len(winners)
	return shares
}

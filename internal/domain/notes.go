package domain

// Denominations is the fixed set of note denominations accepted in a cash
// breakdown. Validation, breakdown entry, and vault display all share this
// set; an amount that cannot be expressed in these notes cannot be recorded
// as cash.
var Denominations = []int{1, 2, 5, 10, 20, 50, 100, 200, 500, 2000}

// ValidDenomination reports whether d belongs to the fixed denomination set.
func ValidDenomination(d int) bool {
	for _, allowed := range Denominations {
		if d == allowed {
			return true
		}
	}
	return false
}

// NoteCounts maps a denomination to a note count. As a transaction breakdown
// the counts are non-negative; as a vault the counts are signed and a
// negative count is a shortage (more notes paid out than received), shown
// as-is and never clamped.
type NoteCounts map[int]int

// NewVault returns a vault with every allowed denomination present at zero.
func NewVault() NoteCounts {
	v := make(NoteCounts, len(Denominations))
	for _, d := range Denominations {
		v[d] = 0
	}
	return v
}

// Amount returns the total money value of the counts.
func (n NoteCounts) Amount() float64 {
	var total float64
	for d, count := range n {
		total += float64(d) * float64(count)
	}
	return total
}

// Clone returns an independent copy.
func (n NoteCounts) Clone() NoteCounts {
	out := make(NoteCounts, len(n))
	for d, count := range n {
		out[d] = count
	}
	return out
}

// Equal reports whether two counts agree on every denomination, treating an
// absent denomination as zero.
func (n NoteCounts) Equal(other NoteCounts) bool {
	for d, count := range n {
		if other[d] != count {
			return false
		}
	}
	for d, count := range other {
		if n[d] != count {
			return false
		}
	}
	return true
}

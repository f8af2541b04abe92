package plan

// DefaultSafetyStock is the reserve subtracted from available stock
// during planning lookahead. The committed simulation never applies it.
const DefaultSafetyStock = 4

// settleInstall computes how many complete long+short sets can be
// installed given the requested installs and the available stock.
// buffer is subtracted from each stock level first, floored at zero;
// pass 0 for the unbuffered, real-world settlement. Both installed
// quantities always equal the number of sets.
func settleInstall(requested, stock Pair, buffer int) (installed Pair, sets int) {
	avail := Pair{
		Long:  max(0, stock.Long-buffer),
		Short: max(0, stock.Short-buffer),
	}
	sets = requested.Min()
	if a := avail.Min(); a < sets {
		sets = a
	}
	if sets < 0 {
		sets = 0
	}
	return Pair{Long: sets, Short: sets}, sets
}

package semidex

import "math/bits"

// PopcountSlice returns the total number of 1-bits across words, using the
// backend for the process-wide auto-detected level. BitVector's rank and
// select directories count with bits.OnesCount64 directly and do not call
// it.
func PopcountSlice(words []uint64) uint64 {
	return popcountForLevel(detectedLevel, words)
}

// popcountForLevel dispatches to the backend matching level. Every branch
// must return bit-identical totals for identical input; popcount_test.go
// checks this directly against popcountScalar for every level.
func popcountForLevel(level cpuFeatureLevel, words []uint64) uint64 {
	switch level {
	case levelScalar:
		return popcountScalar(words)
	default:
		// No hardware vector popcount is available without an assembler;
		// harleySeal is the software bulk-counting technique every
		// non-scalar level uses; all of them run the same code.
		return harleySeal(words)
	}
}

// popcountScalar is the portable reference implementation: one
// bits.OnesCount64 per word. All other popcount backends must return
// bit-for-bit identical totals for identical input.
func popcountScalar(words []uint64) uint64 {
	var total uint64
	for _, w := range words {
		total += uint64(bits.OnesCount64(w))
	}
	return total
}

// harleySeal implements the Harley-Seal bulk popcount algorithm: it
// accumulates each block of 16 words into bit-sliced ones/twos/fours/
// eights/sixteens counters through carry-save adds before doing the
// horizontal reduction, so a block costs five popcount calls instead of
// sixteen. Used as the "vectorized"
// backend for every non-scalar dispatch level.
func harleySeal(words []uint64) uint64 {
	const unrollSeal = 16
	var total uint64
	i := 0
	for ; i+unrollSeal <= len(words); i += unrollSeal {
		var ones, twos, fours, eights, sixteens uint64
		for j := 0; j < unrollSeal; j += 2 {
			a, b := words[i+j], words[i+j+1]
			twosA := ones & a
			ones ^= a
			twosB := ones & b
			ones ^= b
			carry := twosA | twosB
			foursC := twos & carry
			twos ^= carry
			eightsC := fours & foursC
			fours ^= foursC
			sixteens |= eights & eightsC
			eights ^= eightsC
		}
		total += 16 * uint64(bits.OnesCount64(sixteens))
		total += 8 * uint64(bits.OnesCount64(eights))
		total += 4 * uint64(bits.OnesCount64(fours))
		total += 2 * uint64(bits.OnesCount64(twos))
		total += uint64(bits.OnesCount64(ones))
	}
	for ; i < len(words); i++ {
		total += uint64(bits.OnesCount64(words[i]))
	}
	return total
}

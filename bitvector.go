package semidex

import "math/bits"

// superblockWords is the number of 64-bit words covered by one L1 rank
// sample (512 bits).
const superblockWords = 8

// megablockWords is the number of 64-bit words covered by one L2 rank
// sample (32 Ki bits).
const megablockWords = 512

// defaultSelectSampleRate is K in "record the word index for every K-th
// one bit", used when the caller does not override it via SelectSampleRate.
const defaultSelectSampleRate = 256

// BitVector is an immutable, fixed-length sequence of bits supporting O(1)
// rank and O(log n) select. Bit i lives in the (i mod 64)-th least
// significant bit of words[i/64].
type BitVector struct {
	words []uint64
	len   uint64
	ones  uint64

	// l0[w] is the cumulative one-count within words[w]'s superblock, up
	// to (but not including) word w itself. Reset to 0 at every
	// superblock boundary.
	l0 []uint16
	// l1[s] is the cumulative one-count up to the start of superblock s,
	// relative to the start of s's own megablock (reset to 0 at every
	// megablock boundary, matching l2 already holding the global count
	// up to that boundary — summing both would otherwise double-count
	// everything before the megablock for s).
	l1 []uint32
	// l2[m] is the cumulative one-count up to the start of megablock m,
	// global to the whole vector.
	l2 []uint64

	selectIdx  []uint32
	sampleRate uint64
}

// BuildBitVector builds a BitVector over the given packed words and bit
// length. len must not exceed words.len()*64; bits at or beyond len in the
// final word are ignored (callers are expected to have zeroed them, but
// BuildBitVector masks them off defensively).
func BuildBitVector(words []uint64, length uint64, sampleRate uint64) *BitVector {
	needWords := (length + 63) / 64
	if uint64(len(words)) < needWords {
		panic("semidex: BitVector length exceeds word buffer")
	}
	if sampleRate == 0 {
		sampleRate = defaultSelectSampleRate
	}
	w := make([]uint64, needWords)
	copy(w, words[:needWords])
	if length%64 != 0 && needWords > 0 {
		// Clear any stray bits beyond len in the final word.
		mask := uint64(1)<<(length%64) - 1
		w[needWords-1] &= mask
	}

	bv := &BitVector{
		words:      w,
		len:        length,
		sampleRate: sampleRate,
	}
	bv.buildRankDir()
	bv.buildSelectIdx()
	return bv
}

func (bv *BitVector) buildRankDir() {
	nWords := len(bv.words)
	bv.l0 = make([]uint16, nWords)
	nSuper := (nWords + superblockWords - 1) / superblockWords
	bv.l1 = make([]uint32, nSuper+1)
	nMega := (nWords + megablockWords - 1) / megablockWords
	bv.l2 = make([]uint64, nMega+1)

	var total uint64
	var megaCum uint64
	var superCum uint16
	for w := 0; w < nWords; w++ {
		if w%megablockWords == 0 {
			megaCum = 0
			bv.l2[w/megablockWords] = total
		}
		if w%superblockWords == 0 {
			superCum = 0
			s := w / superblockWords
			bv.l1[s] = uint32(megaCum)
		}
		bv.l0[w] = superCum
		ones := uint64(bits.OnesCount64(bv.words[w]))
		superCum += uint16(ones)
		megaCum += ones
		total += ones
	}
	bv.ones = total
	// Sentinels so Rank1(len) (one past the last valid word boundary)
	// never indexes out of range.
	bv.l1[len(bv.l1)-1] = uint32(megaCum)
	bv.l2[len(bv.l2)-1] = total
}

// buildSelectIdx records, for every sampleRate-th one bit (the 0-th,
// sampleRate-th, 2*sampleRate-th, ...), the word index containing it.
func (bv *BitVector) buildSelectIdx() {
	if bv.ones == 0 {
		return
	}
	nSamples := (bv.ones + bv.sampleRate - 1) / bv.sampleRate
	bv.selectIdx = make([]uint32, nSamples)
	var seen uint64
	var nextIdx uint64
	for w := 0; w < len(bv.words) && nextIdx < nSamples; w++ {
		ones := uint64(bits.OnesCount64(bv.words[w]))
		for nextIdx < nSamples && seen+ones > nextIdx*bv.sampleRate {
			bv.selectIdx[nextIdx] = uint32(w)
			nextIdx++
		}
		seen += ones
	}
}

// Len returns the number of bits in the vector.
func (bv *BitVector) Len() uint64 { return bv.len }

// Ones returns the total number of 1-bits.
func (bv *BitVector) Ones() uint64 { return bv.ones }

// Get returns the bit at position i.
func (bv *BitVector) Get(i uint64) bool {
	if i >= bv.len {
		panic("semidex: BitVector.Get index out of range")
	}
	return bv.words[i/64]&(1<<(i%64)) != 0
}

// Rank1 returns the number of 1-bits in [0, i). O(1).
func (bv *BitVector) Rank1(i uint64) uint64 {
	if i > bv.len {
		panic("semidex: BitVector.Rank1 index out of range")
	}
	if i == 0 {
		return 0
	}
	wordIdx := (i - 1) / 64
	super := int(wordIdx) / superblockWords
	mega := int(wordIdx) / megablockWords
	r := bv.l2[mega] + uint64(bv.l1[super]) + uint64(bv.l0[wordIdx])
	bitOff := i - wordIdx*64
	var mask uint64
	if bitOff >= 64 {
		mask = ^uint64(0)
	} else {
		mask = uint64(1)<<bitOff - 1
	}
	r += uint64(bits.OnesCount64(bv.words[wordIdx] & mask))
	return r
}

// Rank0 returns the number of 0-bits in [0, i). Derived from Rank1.
func (bv *BitVector) Rank0(i uint64) uint64 {
	return i - bv.Rank1(i)
}

// selectInWord returns the bit position (0..63) of the k-th (0-indexed)
// set bit in word, or 64 if word has fewer than k+1 set bits.
func selectInWord(word uint64, k uint64) uint64 {
	for i := uint64(0); i < 64; i++ {
		if word&(1<<i) != 0 {
			if k == 0 {
				return i
			}
			k--
		}
	}
	return 64
}

// Select1 returns the position of the k-th (0-indexed) one-bit, or false
// if k >= Ones(). O(log n) via sparse sampling plus a bounded linear scan.
func (bv *BitVector) Select1(k uint64) (uint64, bool) {
	if k >= bv.ones {
		return 0, false
	}
	sampleIdx := k / bv.sampleRate
	startWord := uint64(0)
	if int(sampleIdx) < len(bv.selectIdx) {
		startWord = uint64(bv.selectIdx[sampleIdx])
	}
	w := startWord
	rankAtWordStart := bv.Rank1(w * 64)
	for {
		wordOnes := uint64(bits.OnesCount64(bv.words[w]))
		if rankAtWordStart+wordOnes > k {
			rem := k - rankAtWordStart
			pos := selectInWord(bv.words[w], rem)
			return w*64 + pos, true
		}
		rankAtWordStart += wordOnes
		w++
		if w >= uint64(len(bv.words)) {
			return 0, false
		}
	}
}

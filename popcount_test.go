package semidex

import (
	"math/bits"
	"testing"
)

func TestPopcountScalarMatchesReference(t *testing.T) {
	lengths := []int{0, 1, 7, 8, 15, 16, 17, 31, 32, 33, 63, 64, 65, 100, 257}
	for _, n := range lengths {
		words := make([]uint64, n)
		var want uint64
		for i := range words {
			// A mix of patterns so popcount isn't exercised only on
			// all-zero or all-one words.
			v := uint64(i)*0x9E3779B97F4A7C15 + 1
			words[i] = v
			want += uint64(bits.OnesCount64(v))
		}
		if got := popcountScalar(words); got != want {
			t.Fatalf("len=%d: popcountScalar = %d, want %d", n, got, want)
		}
	}
}

func TestHarleySealMatchesScalar(t *testing.T) {
	lengths := []int{0, 1, 15, 16, 17, 31, 32, 33, 48, 63, 64, 65, 127, 128, 129, 1000}
	for _, n := range lengths {
		words := make([]uint64, n)
		for i := range words {
			words[i] = uint64(i)*0x2545F4914F6CDD1D + 0xABCDEF
		}
		want := popcountScalar(words)
		if got := harleySeal(words); got != want {
			t.Fatalf("len=%d: harleySeal = %d, want %d", n, got, want)
		}
	}
}

// TestPopcountForLevelEquivalence invokes every dispatch level explicitly,
// since DispatchAuto alone would only ever exercise whichever backend the
// machine running the test happens to have.
func TestPopcountForLevelEquivalence(t *testing.T) {
	words := make([]uint64, 200)
	for i := range words {
		words[i] = uint64(i*i) ^ (uint64(i) << 17)
	}
	want := popcountScalar(words)

	levels := []cpuFeatureLevel{levelScalar, levelSSE2, levelSSE42, levelAVX2, levelNEON}
	for _, lvl := range levels {
		if got := popcountForLevel(lvl, words); got != want {
			t.Fatalf("level %v: popcountForLevel = %d, want %d", lvl, got, want)
		}
	}
}

func TestPopcountSliceEmpty(t *testing.T) {
	if got := PopcountSlice(nil); got != 0 {
		t.Fatalf("PopcountSlice(nil) = %d, want 0", got)
	}
}

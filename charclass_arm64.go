//go:build arm64

package semidex

// classifyWordNEON emulates NEON's lack of a direct movemask instruction
// using the multiplication-based bit-gather trick (swarGatherBits):
// isolate bit 7 of each byte lane, then multiply by a byte-shifted
// constant so the eight flag bits collect into the top byte of the word.
func classifyWordNEON(word uint64) ByteClassBits {
	return classifyWordSWAR(word)
}

// classifyWordVector only exists on arm64 so classifyWord's switch compiles
// unconditionally; auto-detection on arm64 never picks the SSE2/SSE4.2/AVX2
// levels, and a forced one runs the same SWAR code.
func classifyWordVector(word uint64) ByteClassBits {
	return classifyWordSWAR(word)
}

//go:build amd64

package semidex

// classifyWordVector is the amd64 "vectorized" backend, selected for the
// SSE2/SSE4.2/AVX2 dispatch levels. No assembler is available in this
// environment to hand-author real SSE2/SSE4.2/AVX2 byte-compare code (see
// DESIGN.md), so every non-scalar amd64 level resolves to the same SWAR
// byte-parallel comparison. The cpuid-gated level distinction still lives
// in dispatch_amd64.go so a future real vector implementation has
// somewhere to plug in per level.
func classifyWordVector(word uint64) ByteClassBits {
	return classifyWordSWAR(word)
}

// classifyWordNEON only exists on amd64 so classifyWord's switch compiles
// unconditionally; auto-detection on amd64 never picks levelNEON, and a
// forced levelNEON (DispatchForceNEON) runs the same SWAR code.
func classifyWordNEON(word uint64) ByteClassBits {
	return classifyWordSWAR(word)
}

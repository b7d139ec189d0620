//go:build !amd64 && !arm64

package semidex

// classifyWordVector and classifyWordNEON exist on every other
// architecture purely so classifyWord's switch compiles; detectCPULevel
// never reports anything but levelScalar here, so only a forced
// SIMDDispatch level reaches them.
func classifyWordVector(word uint64) ByteClassBits {
	return classifyWordSWAR(word)
}

func classifyWordNEON(word uint64) ByteClassBits {
	return classifyWordSWAR(word)
}

package semidex

import "encoding/binary"

// Structural JSON bytes recognized by the classifier (RFC 8259 §2).
const (
	byteQuote     = '"'
	byteBackslash = '\\'
	byteLBrace    = '{'
	byteRBrace    = '}'
	byteLBracket  = '['
	byteRBracket  = ']'
	byteComma     = ','
	byteColon     = ':'
)

// ByteClassBits holds, for one 8-byte lane, the classification of each of
// the lane's 8 bytes as an 8-bit mask: bit i of a field is set if byte i
// of the lane belongs to that class. A byte is never in more than one of
// Quote/Backslash/Structural/Whitespace.
type ByteClassBits struct {
	Quote      uint8
	Backslash  uint8
	Structural uint8
	Whitespace uint8
}

// ClassifyChunk classifies every byte of buf, 8 bytes (one lane) at a
// time. The final lane is zero-padded if len(buf) is not a multiple of 8;
// the pad bytes classify as "other" in every category, which is always
// safe because every recognized class is a nonzero ASCII byte.
func ClassifyChunk(buf []byte) []ByteClassBits {
	return classifyChunkLevel(detectedLevel, buf)
}

func classifyChunkLevel(level cpuFeatureLevel, buf []byte) []ByteClassBits {
	n := (len(buf) + 7) / 8
	out := make([]ByteClassBits, n)
	var lane [8]byte
	for i := 0; i < n; i++ {
		lane = [8]byte{}
		end := i*8 + 8
		if end > len(buf) {
			end = len(buf)
		}
		copy(lane[:], buf[i*8:end])
		out[i] = classifyWord(level, binary.LittleEndian.Uint64(lane[:]))
	}
	return out
}

func classifyWord(level cpuFeatureLevel, word uint64) ByteClassBits {
	switch level {
	case levelScalar:
		return classifyWordScalar(word)
	case levelNEON:
		return classifyWordNEON(word)
	default:
		return classifyWordVector(word)
	}
}

// classifyWordScalar is the portable, non-vectorized reference: a single
// byte-at-a-time switch. Every other backend must classify identically.
func classifyWordScalar(word uint64) ByteClassBits {
	var c ByteClassBits
	for i := 0; i < 8; i++ {
		switch byte(word >> (8 * i)) {
		case byteQuote:
			c.Quote |= 1 << i
		case byteBackslash:
			c.Backslash |= 1 << i
		case byteLBrace, byteRBrace, byteLBracket, byteRBracket, byteComma, byteColon:
			c.Structural |= 1 << i
		case ' ', '\t', '\n', '\r':
			c.Whitespace |= 1 << i
		}
	}
	return c
}

// classifyWordSWAR classifies all 8 bytes of word in parallel using
// SIMD-within-a-register tricks: swarEqMask flags byte lanes equal to a
// given value, swarGatherBits packs the high bit of each lane into a
// single byte. Shared by every non-scalar dispatch level in this module,
// since none of them has real vector hardware behind it here (see
// charclass_amd64.go / charclass_arm64.go).
func classifyWordSWAR(word uint64) ByteClassBits {
	quoteMask := swarEqMask(word, byteQuote)
	backslashMask := swarEqMask(word, byteBackslash)
	structMask := swarEqMask(word, byteLBrace) | swarEqMask(word, byteRBrace) |
		swarEqMask(word, byteLBracket) | swarEqMask(word, byteRBracket) |
		swarEqMask(word, byteComma) | swarEqMask(word, byteColon)
	wsMask := swarEqMask(word, ' ') | swarEqMask(word, '\t') |
		swarEqMask(word, '\n') | swarEqMask(word, '\r')
	return ByteClassBits{
		Quote:      swarGatherBits(quoteMask),
		Backslash:  swarGatherBits(backslashMask),
		Structural: swarGatherBits(structMask),
		Whitespace: swarGatherBits(wsMask),
	}
}

// swarEqMask sets the high bit (bit 7) of every byte lane in word that
// equals b, and clears every other bit. It applies a carry-free zero-byte
// test to word^replicate(b): a lane is zero there iff it matched, and no
// borrow or carry crosses from one lane into the next.
func swarEqMask(word uint64, b byte) uint64 {
	rep := uint64(0x0101010101010101) * uint64(b)
	x := word ^ rep
	return ^(((x & 0x7F7F7F7F7F7F7F7F) + 0x7F7F7F7F7F7F7F7F) | x) & 0x8080808080808080
}

// swarGatherBits packs the high bit of each of mask's 8 byte lanes into
// the low 8 bits of the result (lane 0 -> bit 0). This emulates a
// hardware movemask using a single multiply: each high bit is first
// shifted down to bit 0 of its lane, then each lane's 0/1, scaled by the
// matching power-of-two term of the constant, lands in its own bit of the
// top byte.
func swarGatherBits(mask uint64) uint8 {
	return uint8(((mask >> 7) * 0x0102040810204080) >> 56)
}

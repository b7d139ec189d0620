package semidex

import "fmt"

// scanState tracks what the byte at the cursor means while walking the
// source once, left to right. It only ever needs to distinguish whether
// we're looking for a JSON value, inside a string's content, right after
// a backslash inside a string, or mid-way through a bare literal/number
// token — the four states spec.md's stage-1 scanner names.
type scanState int

const (
	stateJSON scanState = iota
	stateString
	stateEscape
	stateValue
)

// containerKind distinguishes an open object from an open array on the
// scanner's container stack, since only objects require skipping a key
// string before each value.
type containerKind byte

const (
	containerObject containerKind = 'O'
	containerArray  containerKind = 'A'
)

// stage1Result holds the two parallel bitstreams and the offset table a
// single forward pass over the source produces: ib marks every
// structurally significant source byte (quotes, brackets, braces, comma,
// colon) and the first byte of every number or literal, bp is the balanced-parentheses encoding of the value tree (one
// open bit then, eventually, one close bit per value node), and offsets
// records, for each bp bit in order, the source byte offset it
// corresponds to (the value's first byte for an open, one past the
// value's last byte for a close).
type stage1Result struct {
	ib      *BitWriter
	bp      *BitWriter
	offsets []uint64
}

// scanStage1 walks source once, left to right, building the Interest
// Bits and Balanced Parens streams plus the offset table BuildIndex needs
// to turn a BP position into a byte range. It does not validate that
// source is well-formed JSON beyond what's needed to find value
// boundaries. An unterminated string or a closing bracket with no open
// container is returned as an error; other malformed input, such as a
// container that is never closed, yields an unbalanced tree, on which
// BalancedParens.FindClose panics for the unclosed node.
//
// level picks which classifyWord backend classifies source up front
// (see charclass.go); the stack-driven walk that follows is inherently
// sequential (each byte's meaning depends on what container it's inside
// and whether a key is expected next) and isn't itself vectorized, but
// its two tightest inner loops, scanStringExtent and scanLiteralExtent,
// consult the precomputed classification instead of re-deriving it a
// byte at a time.
func scanStage1(source []byte, level cpuFeatureLevel) (*stage1Result, error) {
	n := len(source)
	classes := classifyChunkLevel(level, source)
	res := &stage1Result{
		ib:      NewBitWriter(uint64(n)),
		bp:      NewBitWriter(uint64(n) / 4),
		offsets: make([]uint64, 0, n/8),
	}

	markIB := func(i int) {
		for res.ib.Len() < uint64(i) {
			res.ib.PutBit(false)
		}
		res.ib.PutBit(true)
	}
	emitOpen := func(offset int) {
		markIB(offset)
		res.bp.PutBit(true)
		res.offsets = append(res.offsets, uint64(offset))
	}
	emitClose := func(offset int) {
		res.bp.PutBit(false)
		res.offsets = append(res.offsets, uint64(offset))
	}

	var stack []containerKind
	expectKey := false
	topIs := func(k containerKind) bool {
		return len(stack) > 0 && stack[len(stack)-1] == k
	}

	classAt := func(i int) (ByteClassBits, uint8) {
		return classes[i>>3], 1 << uint(i&7)
	}

	i := 0
	for i < n {
		c := source[i]
		if cb, bit := classAt(i); cb.Whitespace&bit != 0 {
			i++
			continue
		}

		switch {
		case topIs(containerObject) && expectKey && c == byteQuote:
			markIB(i)
			end, err := scanStringExtent(source, i, classes)
			if err != nil {
				return nil, err
			}
			markIB(end - 1)
			i = end
			for i < n && isJSONSpace(source[i]) {
				i++
			}
			if i < n && source[i] == byteColon {
				markIB(i)
				i++
			}
			expectKey = false

		case c == byteLBrace || c == byteLBracket:
			emitOpen(i)
			if c == byteLBrace {
				stack = append(stack, containerObject)
				expectKey = true
			} else {
				stack = append(stack, containerArray)
			}
			i++

		case c == byteRBrace || c == byteRBracket:
			markIB(i)
			if len(stack) == 0 {
				return nil, fmt.Errorf("semidex: unexpected %q at offset %d", c, i)
			}
			stack = stack[:len(stack)-1]
			emitClose(i + 1)
			i++
			expectKey = false

		case c == byteQuote:
			end, err := scanStringExtent(source, i, classes)
			if err != nil {
				return nil, err
			}
			emitOpen(i)
			markIB(end - 1)
			emitClose(end)
			i = end

		case c == byteComma:
			markIB(i)
			if topIs(containerObject) {
				expectKey = true
			}
			i++

		case c == byteColon:
			markIB(i)
			i++

		default:
			end := scanLiteralExtent(source, i, classes)
			if end == i {
				i++
				continue
			}
			emitOpen(i)
			emitClose(end)
			i = end
		}
	}

	for res.ib.Len() < uint64(n) {
		res.ib.PutBit(false)
	}

	if len(res.offsets) == 0 {
		return nil, fmt.Errorf("semidex: no JSON value found")
	}
	return res, nil
}

// scanStringExtent returns the index one past the closing quote of the
// string literal starting at source[start] (source[start] must be '"').
// It tracks the stateString/stateEscape distinction bit for bit, using
// classes (built once for the whole document by scanStage1) instead of
// comparing source[i] against byteBackslash/byteQuote directly: a
// backslash flips into stateEscape for exactly one byte, so an escaped
// quote never ends the string early.
func scanStringExtent(source []byte, start int, classes []ByteClassBits) (int, error) {
	n := len(source)
	state := stateString
	for i := start + 1; i < n; i++ {
		if state == stateEscape {
			state = stateString
			continue
		}
		cb, bit := classes[i>>3], uint8(1)<<uint(i&7)
		switch {
		case cb.Backslash&bit != 0:
			state = stateEscape
		case cb.Quote&bit != 0:
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("semidex: unterminated string starting at offset %d", start)
}

// scanLiteralExtent returns the index one past the bare token (number,
// true, false, or null) starting at source[start], stopping at the first
// byte classified as whitespace, a quote, or structural (see charclass.go;
// those three classes are exactly RFC 8259's token-terminating bytes).
func scanLiteralExtent(source []byte, start int, classes []ByteClassBits) int {
	n := len(source)
	i := start
	for i < n {
		cb, bit := classes[i>>3], uint8(1)<<uint(i&7)
		if (cb.Quote|cb.Structural|cb.Whitespace)&bit != 0 {
			return i
		}
		i++
	}
	return i
}

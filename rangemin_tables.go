package semidex

// byteExcessMin[v] is the minimum excess reached, relative to the byte's
// own start, after consuming each of byte v's 8 bits LSB-first (bit i set
// means an open paren, contributing +1; clear means a close paren, -1).
// byteExcessTotal[v] is the net excess after all 8 bits.
//
// byteExcessMinBack[v] is the same minimum, but for the byte scanned
// MSB-first with the delta sign flipped — the walk a backward search
// performs when it steps across a byte from its last bit to its first.
// Its total is simply -byteExcessTotal[v], so no separate table is kept
// for it.
var byteExcessMin [256]int16
var byteExcessTotal [256]int16
var byteExcessMinBack [256]int16

func init() {
	for v := 0; v < 256; v++ {
		var running, min int16
		min = 1 << 14
		for i := 0; i < 8; i++ {
			if v&(1<<uint(i)) != 0 {
				running++
			} else {
				running--
			}
			if running < min {
				min = running
			}
		}
		byteExcessMin[v] = min
		byteExcessTotal[v] = running

		running, min = 0, 1<<14
		for i := 7; i >= 0; i-- {
			if v&(1<<uint(i)) != 0 {
				running--
			} else {
				running++
			}
			if running < min {
				min = running
			}
		}
		byteExcessMinBack[v] = min
	}
}

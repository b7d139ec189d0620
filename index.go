package semidex

import (
	"fmt"
	"math"
)

// Index is the finished semi-index over one JSON document: an Interest
// Bits vector over the source bytes, a Balanced Parens tree over the
// value nodes, and an offset table translating BP positions back into
// byte ranges in source. It holds no decoded values — only source plus
// enough compact structure to navigate it, built once and read many
// times.
type Index struct {
	source []byte
	ib     *BitVector
	bp     *BalancedParens

	offsets32 []uint32
	offsets64 []uint64
	wide      bool
}

// BuildIndex scans source and assembles an Index, applying any Option
// overrides to the select sample rate, BP block size, and SIMD dispatch
// level used while building it.
func BuildIndex(source []byte, opts ...Option) (*Index, error) {
	cfg := applyOptions(opts)
	level := resolveLevel(cfg.simdDispatch)

	res, err := scanStage1(source, level)
	if err != nil {
		return nil, fmt.Errorf("semidex: %w", err)
	}

	ib := BuildBitVector(res.ib.Words(), res.ib.Len(), cfg.selectSampleRate)
	bp := BuildBalancedParens(res.bp.Words(), res.bp.Len(), cfg.bpBlockSize)

	idx := &Index{source: source, ib: ib, bp: bp}
	if uint64(len(source)) > math.MaxUint32 {
		idx.wide = true
		idx.offsets64 = res.offsets
	} else {
		idx.offsets32 = make([]uint32, len(res.offsets))
		for i, o := range res.offsets {
			idx.offsets32[i] = uint32(o)
		}
	}
	return idx, nil
}

// offsetAt returns the source byte offset recorded for BP position p.
func (ix *Index) offsetAt(p uint64) uint64 {
	if ix.wide {
		return ix.offsets64[p]
	}
	return uint64(ix.offsets32[p])
}

// Source returns the original document bytes the index was built over.
func (ix *Index) Source() []byte { return ix.source }

// InterestBits returns the interest bitmap built during scanning (one bit
// per source byte, set at quotes outside string content, brackets, braces,
// commas, colons, and the first byte of every number or literal).
func (ix *Index) InterestBits() *BitVector { return ix.ib }

// BalancedParens returns the value-tree encoding built during scanning.
func (ix *Index) BalancedParens() *BalancedParens { return ix.bp }

// Root returns a Cursor over the document's single top-level value.
func (ix *Index) Root() (*Cursor, error) {
	if ix.bp.Len() == 0 {
		return nil, fmt.Errorf("semidex: empty document")
	}
	return &Cursor{idx: ix, pos: 0}, nil
}

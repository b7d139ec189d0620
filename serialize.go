package semidex

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

// CompressMode selects the tradeoff Serialize makes between encode speed
// and output size.
type CompressMode int

const (
	CompressNone CompressMode = iota
	CompressFast
	CompressDefault
	CompressBest
)

const serializeMagic = "SMDX"
const serializeVersion = 1

const (
	codecRaw byte = iota
	codecS2
	codecZstd
)

// Serialize encodes a built Index into a compact, self-contained byte
// stream: the source document, the Interest Bits and Balanced Parens
// word buffers, and the offset table, each compressed independently.
// Persistence is optional and entirely separate from building the
// index: a semi-index never copies decoded values out of source, so
// there is nothing to serialize beyond these few buffers.
func Serialize(idx *Index, mode CompressMode) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(serializeMagic)
	writeUvarint(&buf, serializeVersion)
	writeUvarint(&buf, uint64(idx.ib.Len()))
	writeUvarint(&buf, uint64(idx.bp.Len()))
	writeUvarint(&buf, uint64(idx.ib.sampleRate))
	writeUvarint(&buf, uint64(idx.bp.blockSize))
	if idx.wide {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}

	if err := writeCompressedBlock(&buf, idx.source, mode); err != nil {
		return nil, fmt.Errorf("semidex: serialize source: %w", err)
	}
	if err := writeCompressedBlock(&buf, packWords(idx.ib.words), mode); err != nil {
		return nil, fmt.Errorf("semidex: serialize interest bits: %w", err)
	}
	if err := writeCompressedBlock(&buf, packWords(idx.bp.words), mode); err != nil {
		return nil, fmt.Errorf("semidex: serialize balanced parens: %w", err)
	}
	if err := writeOffsetsBlock(&buf, idx, mode); err != nil {
		return nil, fmt.Errorf("semidex: serialize offsets: %w", err)
	}
	return buf.Bytes(), nil
}

// Deserialize reconstructs an Index from bytes produced by Serialize.
// Options apply to the reconstructed rank/select and RangeMin
// directories exactly as they would to a fresh Build call; to reproduce
// the original Index byte-for-byte, pass the same SelectSampleRate and
// BPBlockSize used when it was built (they are also stored in the
// stream and used as the default when no override is given).
func Deserialize(data []byte, opts ...Option) (*Index, error) {
	r := bytes.NewReader(data)

	magic := make([]byte, len(serializeMagic))
	if _, err := io.ReadFull(r, magic); err != nil || string(magic) != serializeMagic {
		return nil, errors.New("semidex: not a semidex serialized index")
	}
	version, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("semidex: reading version: %w", err)
	}
	if version != serializeVersion {
		return nil, fmt.Errorf("semidex: unsupported serialized version %d", version)
	}
	ibLen, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("semidex: reading ib length: %w", err)
	}
	bpLen, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("semidex: reading bp length: %w", err)
	}
	storedSampleRate, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("semidex: reading sample rate: %w", err)
	}
	storedBlockSize, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("semidex: reading block size: %w", err)
	}
	wideByte, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("semidex: reading width flag: %w", err)
	}
	wide := wideByte != 0

	cfg := defaultConfig()
	cfg.selectSampleRate = storedSampleRate
	cfg.bpBlockSize = int(storedBlockSize)
	for _, opt := range opts {
		opt(&cfg)
	}

	source, err := readCompressedBlock(r)
	if err != nil {
		return nil, fmt.Errorf("semidex: reading source: %w", err)
	}
	ibRaw, err := readCompressedBlock(r)
	if err != nil {
		return nil, fmt.Errorf("semidex: reading interest bits: %w", err)
	}
	bpRaw, err := readCompressedBlock(r)
	if err != nil {
		return nil, fmt.Errorf("semidex: reading balanced parens: %w", err)
	}
	offsetsRaw, err := readCompressedBlock(r)
	if err != nil {
		return nil, fmt.Errorf("semidex: reading offsets: %w", err)
	}

	ib := BuildBitVector(unpackWords(ibRaw), ibLen, cfg.selectSampleRate)
	bp := BuildBalancedParens(unpackWords(bpRaw), bpLen, cfg.bpBlockSize)

	idx := &Index{source: source, ib: ib, bp: bp, wide: wide}
	if wide {
		idx.offsets64 = unpackUint64s(offsetsRaw)
	} else {
		idx.offsets32 = unpackUint32s(offsetsRaw)
	}
	return idx, nil
}

func writeUvarint(buf *bytes.Buffer, v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	buf.Write(tmp[:n])
}

func packWords(words []uint64) []byte {
	b := make([]byte, 8*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint64(b[i*8:], w)
	}
	return b
}

func unpackWords(b []byte) []uint64 {
	words := make([]uint64, len(b)/8)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
	return words
}

func unpackUint32s(b []byte) []uint32 {
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return out
}

func unpackUint64s(b []byte) []uint64 {
	out := make([]uint64, len(b)/8)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
	return out
}

func writeOffsetsBlock(buf *bytes.Buffer, idx *Index, mode CompressMode) error {
	var raw []byte
	if idx.wide {
		raw = make([]byte, 8*len(idx.offsets64))
		for i, o := range idx.offsets64 {
			binary.LittleEndian.PutUint64(raw[i*8:], o)
		}
	} else {
		raw = make([]byte, 4*len(idx.offsets32))
		for i, o := range idx.offsets32 {
			binary.LittleEndian.PutUint32(raw[i*4:], o)
		}
	}
	// Offset tables are near-monotonic (byte offsets only ever increase
	// within one container's children), which zstd's larger match window
	// exploits far better than s2's; compress every non-None mode with it.
	if mode == CompressNone {
		buf.WriteByte(codecRaw)
		writeUvarint(buf, uint64(len(raw)))
		buf.Write(raw)
		return nil
	}
	level := zstdLevelFor(mode)
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if err != nil {
		return err
	}
	defer enc.Close()
	compressed := enc.EncodeAll(raw, nil)
	buf.WriteByte(codecZstd)
	writeUvarint(buf, uint64(len(compressed)))
	buf.Write(compressed)
	return nil
}

func zstdLevelFor(mode CompressMode) zstd.EncoderLevel {
	switch mode {
	case CompressFast:
		return zstd.SpeedFastest
	case CompressBest:
		return zstd.SpeedBestCompression
	default:
		return zstd.SpeedDefault
	}
}

func writeCompressedBlock(buf *bytes.Buffer, raw []byte, mode CompressMode) error {
	switch mode {
	case CompressNone:
		buf.WriteByte(codecRaw)
		writeUvarint(buf, uint64(len(raw)))
		buf.Write(raw)
		return nil
	case CompressBest:
		compressed := s2.EncodeBest(nil, raw)
		buf.WriteByte(codecS2)
		writeUvarint(buf, uint64(len(compressed)))
		buf.Write(compressed)
		return nil
	case CompressFast:
		compressed := s2.Encode(nil, raw)
		buf.WriteByte(codecS2)
		writeUvarint(buf, uint64(len(compressed)))
		buf.Write(compressed)
		return nil
	default:
		compressed := s2.EncodeBetter(nil, raw)
		buf.WriteByte(codecS2)
		writeUvarint(buf, uint64(len(compressed)))
		buf.Write(compressed)
		return nil
	}
}

func readCompressedBlock(r *bytes.Reader) ([]byte, error) {
	codec, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	switch codec {
	case codecRaw:
		return payload, nil
	case codecS2:
		return s2.Decode(nil, payload)
	case codecZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(payload, nil)
	default:
		return nil, fmt.Errorf("semidex: unknown block codec %d", codec)
	}
}

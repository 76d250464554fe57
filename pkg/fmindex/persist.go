package fmindex

import (
	"encoding/binary"
	"io"

	"github.com/RoaringBitmap/roaring"
	"github.com/pkg/errors"

	"github.com/LucasOJ/read-mapping/pkg/align"
	"github.com/LucasOJ/read-mapping/pkg/alphabet"
	"github.com/LucasOJ/read-mapping/pkg/rlebwt"
)

// blockVersion is bumped whenever the on-disk block layout changes.
const blockVersion = uint32(1)

// WriteTo serializes the FM-index block: block version, n, C-table,
// sampling periods, the run-length encoded BWT runs, the sampled-SA bitmap,
// and samples — in the fixed little-endian layout the persisted index
// relies on for CorruptIndex validation on load. Rank checkpoints are not
// written; ReadFrom rebuilds them from the runs.
func (idx *FmIndex) WriteTo(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, blockVersion); err != nil {
		return errors.Wrap(err, "fmindex: writing block version")
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(idx.n)); err != nil {
		return errors.Wrap(err, "fmindex: writing n")
	}
	for sym := alphabet.Symbol(0); sym < alphabet.NumSymbols; sym++ {
		if err := binary.Write(w, binary.LittleEndian, idx.c[sym]); err != nil {
			return errors.Wrap(err, "fmindex: writing C-table")
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(idx.rank)); err != nil {
		return errors.Wrap(err, "fmindex: writing R")
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(idx.k)); err != nil {
		return errors.Wrap(err, "fmindex: writing K")
	}

	runs := idx.bwt.Runs
	if err := binary.Write(w, binary.LittleEndian, uint64(len(runs))); err != nil {
		return errors.Wrap(err, "fmindex: writing run count")
	}
	for _, run := range runs {
		if err := binary.Write(w, binary.LittleEndian, byte(run.Symbol)); err != nil {
			return errors.Wrap(err, "fmindex: writing run symbol")
		}
		if err := binary.Write(w, binary.LittleEndian, run.Length); err != nil {
			return errors.Wrap(err, "fmindex: writing run length")
		}
	}

	bitmapBytes, err := idx.sampled.ToBytes()
	if err != nil {
		return errors.Wrap(err, "fmindex: serializing sampled-SA bitmap")
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(bitmapBytes))); err != nil {
		return errors.Wrap(err, "fmindex: writing bitmap length")
	}
	if _, err := w.Write(bitmapBytes); err != nil {
		return errors.Wrap(err, "fmindex: writing bitmap bytes")
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(len(idx.samples))); err != nil {
		return errors.Wrap(err, "fmindex: writing sample count")
	}
	for _, s := range idx.samples {
		if err := binary.Write(w, binary.LittleEndian, s); err != nil {
			return errors.Wrap(err, "fmindex: writing sample")
		}
	}
	return nil
}

// ReadFrom deserializes an FM-index block written by WriteTo, reconstructing
// the run-length encoded BWT and its checkpoints from the persisted runs.
// Fails with align.ErrCorruptIndex on any structural inconsistency.
func ReadFrom(r io.Reader) (*FmIndex, error) {
	idx := &FmIndex{}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, errors.Wrap(err, "fmindex: reading block version")
	}
	if version != blockVersion {
		return nil, errors.Wrapf(align.ErrCorruptIndex, "unsupported block version %d", version)
	}

	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, errors.Wrap(err, "fmindex: reading n")
	}
	idx.n = int(n)

	for sym := alphabet.Symbol(0); sym < alphabet.NumSymbols; sym++ {
		if err := binary.Read(r, binary.LittleEndian, &idx.c[sym]); err != nil {
			return nil, errors.Wrap(err, "fmindex: reading C-table")
		}
	}

	var rankPeriod, samplePeriod uint32
	if err := binary.Read(r, binary.LittleEndian, &rankPeriod); err != nil {
		return nil, errors.Wrap(err, "fmindex: reading R")
	}
	if err := binary.Read(r, binary.LittleEndian, &samplePeriod); err != nil {
		return nil, errors.Wrap(err, "fmindex: reading K")
	}
	idx.rank = int(rankPeriod)
	idx.k = int(samplePeriod)
	if idx.rank < 1 || idx.k < 1 {
		return nil, errors.Wrap(align.ErrCorruptIndex, "non-positive sampling period")
	}

	var numRuns uint64
	if err := binary.Read(r, binary.LittleEndian, &numRuns); err != nil {
		return nil, errors.Wrap(err, "fmindex: reading run count")
	}
	bwtSymbols := make([]alphabet.Symbol, 0, idx.n)
	var totalLen uint64
	for i := uint64(0); i < numRuns; i++ {
		var symByte byte
		var length uint32
		if err := binary.Read(r, binary.LittleEndian, &symByte); err != nil {
			return nil, errors.Wrap(err, "fmindex: reading run symbol")
		}
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			return nil, errors.Wrap(err, "fmindex: reading run length")
		}
		if symByte >= alphabet.NumSymbols {
			return nil, errors.Wrap(align.ErrCorruptIndex, "run symbol out of range")
		}
		sym := alphabet.Symbol(symByte)
		for j := uint32(0); j < length; j++ {
			bwtSymbols = append(bwtSymbols, sym)
		}
		totalLen += uint64(length)
	}
	if totalLen != n {
		return nil, errors.Wrapf(align.ErrCorruptIndex, "run lengths sum to %d, want %d", totalLen, n)
	}
	idx.bwt = rlebwt.Build(bwtSymbols, idx.rank)

	var bitmapLen uint64
	if err := binary.Read(r, binary.LittleEndian, &bitmapLen); err != nil {
		return nil, errors.Wrap(err, "fmindex: reading bitmap length")
	}
	bitmapBytes := make([]byte, bitmapLen)
	if _, err := io.ReadFull(r, bitmapBytes); err != nil {
		return nil, errors.Wrap(err, "fmindex: reading bitmap bytes")
	}
	idx.sampled = roaring.New()
	if _, err := idx.sampled.FromBuffer(bitmapBytes); err != nil {
		return nil, errors.Wrap(align.ErrCorruptIndex, "unreadable sampled-SA bitmap")
	}

	var numSamples uint64
	if err := binary.Read(r, binary.LittleEndian, &numSamples); err != nil {
		return nil, errors.Wrap(err, "fmindex: reading sample count")
	}
	idx.samples = make([]uint64, numSamples)
	for i := range idx.samples {
		if err := binary.Read(r, binary.LittleEndian, &idx.samples[i]); err != nil {
			return nil, errors.Wrap(err, "fmindex: reading sample")
		}
	}

	return idx, nil
}

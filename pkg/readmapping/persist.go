package readmapping

import (
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/LucasOJ/read-mapping/pkg/align"
	"github.com/LucasOJ/read-mapping/pkg/fmindex"
	"github.com/LucasOJ/read-mapping/pkg/packedseq"
)

var magic = [8]byte{'R', 'D', 'M', 'A', 'P', 'I', 'D', 'X'}

const formatVersion = uint32(1)

// WriteTo persists the index: a plain MAGIC/VERSION/n preamble followed by
// the forward and reverse FM-index blocks, both streamed through a zstd
// writer.
func (idx *Index) WriteTo(w io.Writer) error {
	if _, err := w.Write(magic[:]); err != nil {
		return errors.Wrap(err, "readmapping: writing magic")
	}
	if err := binary.Write(w, binary.LittleEndian, formatVersion); err != nil {
		return errors.Wrap(err, "readmapping: writing version")
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(idx.n)); err != nil {
		return errors.Wrap(err, "readmapping: writing n")
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return errors.Wrap(err, "readmapping: creating zstd writer")
	}
	if err := idx.forward.WriteTo(zw); err != nil {
		_ = zw.Close()
		return errors.Wrap(err, "readmapping: writing forward index")
	}
	if err := idx.reverse.WriteTo(zw); err != nil {
		_ = zw.Close()
		return errors.Wrap(err, "readmapping: writing reverse index")
	}
	return errors.Wrap(zw.Close(), "readmapping: closing zstd writer")
}

// ReadFrom loads an index persisted by WriteTo. Fails with
// align.ErrCorruptIndex on a magic/version mismatch or structural
// inconsistency in either FM-index block.
func ReadFrom(r io.Reader) (*Index, error) {
	var gotMagic [8]byte
	if _, err := io.ReadFull(r, gotMagic[:]); err != nil {
		return nil, errors.Wrap(err, "readmapping: reading magic")
	}
	if gotMagic != magic {
		return nil, errors.Wrap(align.ErrCorruptIndex, "bad magic")
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, errors.Wrap(err, "readmapping: reading version")
	}
	if version != formatVersion {
		return nil, errors.Wrapf(align.ErrCorruptIndex, "unsupported format version %d", version)
	}

	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, errors.Wrap(err, "readmapping: reading n")
	}

	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "readmapping: creating zstd reader")
	}
	defer zr.Close()

	forward, err := fmindex.ReadFrom(zr)
	if err != nil {
		return nil, errors.Wrap(err, "readmapping: reading forward index")
	}
	reverse, err := fmindex.ReadFrom(zr)
	if err != nil {
		return nil, errors.Wrap(err, "readmapping: reading reverse index")
	}

	genome, err := reconstructGenome(forward, int(n))
	if err != nil {
		return nil, errors.Wrap(err, "readmapping: reconstructing packed genome")
	}

	return &Index{forward: forward, reverse: reverse, genome: genome, n: int(n)}, nil
}

// reconstructGenome recovers the forward genome's symbols from the forward
// FM-index via repeated LF-walks, so that a reloaded Index can still
// retain a packed genome for O(1) extension without persisting it
// separately.
func reconstructGenome(idx *fmindex.FmIndex, n int) (*packedseq.Sequence, error) {
	withSentinel := idx.RecoverText()
	return packedseq.FromSymbols(withSentinel[:n])
}

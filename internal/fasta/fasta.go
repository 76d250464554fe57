// Package fasta loads reference genomes from FASTA text, concatenating all
// records in file order with no separator between them.
package fasta

import (
	"bufio"
	"bytes"
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/LucasOJ/read-mapping/pkg/align"
)

// LoadGenome reads FASTA records from r and concatenates their sequence
// lines into a single ACGT byte slice. Header lines (starting '>') are
// skipped; record boundaries are not retained. Fails with
// align.ErrInvalidAlphabet on any non-ACGT base (including 'N').
func LoadGenome(r io.Reader) ([]byte, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024*1024)

	var genome []byte
	records := 0
	for scanner.Scan() {
		line := bytes.TrimRight(scanner.Bytes(), "\r\n \t")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			records++
			continue
		}
		for _, b := range line {
			if b == ' ' || b == '\t' {
				continue
			}
			if _, ok := validBase(b); !ok {
				return nil, errors.Wrapf(align.ErrInvalidAlphabet, "byte %q in record %d", b, records)
			}
			genome = append(genome, b)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "fasta: scanning input")
	}

	log.WithFields(log.Fields{"records": records, "bases": len(genome)}).Debug("loaded FASTA genome")
	return genome, nil
}

func validBase(b byte) (byte, bool) {
	switch b {
	case 'A', 'a', 'C', 'c', 'G', 'g', 'T', 't':
		return b, true
	default:
		return 0, false
	}
}

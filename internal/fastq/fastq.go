// Package fastq provides a streaming FASTQ reader for read-mapping input.
package fastq

import (
	"bufio"
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// Record is a single FASTQ read. Quality is retained for completeness but
// ignored by the mapping core.
type Record struct {
	Header   string
	Sequence []byte
	Quality  []byte
}

// Reader streams FASTQ records one at a time.
type Reader struct {
	r    *bufio.Reader
	line []byte
}

// NewReader wraps r as a streaming FASTQ reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r:    bufio.NewReaderSize(r, 1<<20),
		line: make([]byte, 0, 512),
	}
}

// Next reads the next four-line record. Returns io.EOF once the stream is
// exhausted with no partial record pending.
func (fr *Reader) Next() (*Record, error) {
	header, err := fr.readLine()
	if err != nil {
		return nil, err
	}
	if len(header) == 0 || header[0] != '@' {
		return nil, errors.New("fastq: header line must start with @")
	}
	// readLine reuses its buffer, so copy the header before the next read.
	id := string(header[1:])

	seq, err := fr.readLine()
	if err != nil {
		return nil, errors.Wrap(err, "fastq: reading sequence line")
	}
	sequence := append([]byte(nil), seq...)

	plus, err := fr.readLine()
	if err != nil {
		return nil, errors.Wrap(err, "fastq: reading separator line")
	}
	if len(plus) == 0 || plus[0] != '+' {
		return nil, errors.New("fastq: separator line must start with +")
	}

	qual, err := fr.readLine()
	if err != nil {
		return nil, errors.Wrap(err, "fastq: reading quality line")
	}
	quality := append([]byte(nil), qual...)

	if len(sequence) != len(quality) {
		return nil, errors.New("fastq: sequence and quality lengths must match")
	}

	return &Record{Header: id, Sequence: sequence, Quality: quality}, nil
}

func (fr *Reader) readLine() ([]byte, error) {
	fr.line = fr.line[:0]
	for {
		segment, isPrefix, err := fr.r.ReadLine()
		if err != nil {
			return nil, err
		}
		fr.line = append(fr.line, segment...)
		if !isPrefix {
			break
		}
	}
	fr.line = bytes.TrimSuffix(fr.line, []byte{'\r'})
	return fr.line, nil
}

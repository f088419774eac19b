package dump

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var ErrEmptyName = errors.New("file name is empty")

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	gzipMagic = []byte{0x1f, 0x8b}
)

// Open opens the named file, or stdin for "-".
// Zstandard and gzip compressed files are decompressed as they are read.
func Open(name string) (io.ReadCloser, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if name == "-" {
		return Reader(os.Stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	rc, err := Reader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &closers{ReadCloser: rc, file: f}, nil
}

// Reader returns r, decompressing it when it starts with a zstd or gzip header.
func Reader(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("peek input: %w", err)
	}
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		return dec.IOReadCloser(), nil
	case bytes.HasPrefix(head, gzipMagic):
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		return gz, nil
	}
	return io.NopCloser(br), nil
}

type closers struct {
	io.ReadCloser
	file *os.File
}

func (c *closers) Close() error {
	err := c.ReadCloser.Close()
	if ferr := c.file.Close(); err == nil {
		err = ferr
	}
	return err
}

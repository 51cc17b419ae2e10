package record

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// compressReader implements the ReadCloser interface
// and replaces the Read method with a decompression one.
type compressReader struct {
	f  io.ReadCloser
	zr *gzip.Reader
}

func newCompressReader(f io.ReadCloser) (*compressReader, error) {
	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("new gzip reader: %w", err)
	}

	return &compressReader{
		f:  f,
		zr: zr,
	}, nil
}

func (c *compressReader) Read(p []byte) (int, error) {
	return c.zr.Read(p)
}

func (c *compressReader) Close() error {
	if err := c.f.Close(); err != nil {
		return fmt.Errorf("close failed: %w", err)
	}
	return c.zr.Close()
}

// FileSource is a CSVSource backed by a transactions file.
type FileSource struct {
	*CSVSource
	closer io.Closer
}

// Open opens the transactions file at path, transparently decompressing
// gzipped input judging by the file extension.
func Open(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transactions file: %w", err)
	}

	var rc io.ReadCloser = f
	if strings.HasSuffix(path, ".gz") {
		cr, err := newCompressReader(f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		rc = cr
	}

	return &FileSource{CSVSource: NewCSVSource(rc), closer: rc}, nil
}

// Close releases the underlying file.
func (s *FileSource) Close() error {
	return s.closer.Close()
}

package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/platefinder/backend/internal/domain"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Loader reads the raw restaurant CSV under a primary text encoding,
// retrying once under a fallback encoding on decode failure. Real-world
// exports of this dataset carry latin-1 bytes that are not valid UTF-8.
type Loader struct {
	path             string
	primaryEncoding  string
	fallbackEncoding string
}

// NewLoader creates a dataset loader for the given file path and
// encoding pair.
func NewLoader(path, primaryEncoding, fallbackEncoding string) *Loader {
	return &Loader{
		path:             path,
		primaryEncoding:  primaryEncoding,
		fallbackEncoding: fallbackEncoding,
	}
}

// Load parses the source into a raw table. A file unreadable under both
// encodings, or otherwise unparsable, wraps domain.ErrLoadFailed; the
// pipeline treats that as its one fatal condition.
func (l *Loader) Load(ctx context.Context) (*domain.RawTable, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLoadFailed, err)
	}

	table, primaryErr := l.parse(ctx, data, l.primaryEncoding)
	if primaryErr == nil {
		return table, nil
	}
	if errors.Is(primaryErr, context.Canceled) || errors.Is(primaryErr, context.DeadlineExceeded) {
		return nil, primaryErr
	}

	log.Printf("[DATASET] decode under %q failed (%v), retrying with %q", l.primaryEncoding, primaryErr, l.fallbackEncoding)

	table, fallbackErr := l.parse(ctx, data, l.fallbackEncoding)
	if fallbackErr == nil {
		return table, nil
	}
	if errors.Is(fallbackErr, context.Canceled) || errors.Is(fallbackErr, context.DeadlineExceeded) {
		return nil, fallbackErr
	}

	return nil, fmt.Errorf("%w: %s decode: %v; %s decode: %v",
		domain.ErrLoadFailed, l.primaryEncoding, primaryErr, l.fallbackEncoding, fallbackErr)
}

// parse decodes the raw bytes under one named encoding and reads them
// as a headered CSV.
func (l *Loader) parse(ctx context.Context, data []byte, encodingName string) (*domain.RawTable, error) {
	decoded, err := decode(data, encodingName)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1 // ragged rows are handled per-cell, not rejected

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\uFEFF"))
	}

	table := &domain.RawTable{Columns: header}
	for {
		if len(table.Rows)%1024 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(table.Rows)+2, err)
		}

		row := make(domain.RawRecord, len(header))
		for i, col := range header {
			if i < len(cells) {
				row[col] = cells[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}

	log.Printf("[DATASET] loaded %d rows, %d columns from %s (%s)", len(table.Rows), len(header), l.path, encodingName)
	return table, nil
}

// decode converts data from the named encoding to UTF-8. The UTF-8
// branch validates strictly so that latin-1 files fail here and trigger
// the fallback retry instead of passing through mangled.
func decode(data []byte, encodingName string) ([]byte, error) {
	name := strings.ToLower(strings.TrimSpace(encodingName))
	switch name {
	case "", "utf-8", "utf8":
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("data is not valid UTF-8")
		}
		return data, nil
	}

	enc, err := charmapByName(name)
	if err != nil {
		return nil, err
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return decoded, nil
}

func charmapByName(name string) (encoding.Encoding, error) {
	switch name {
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

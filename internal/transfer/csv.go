// Package transfer implements the line-oriented text format used to move
// rooms, guests and services in and out of the hotel. One header line, one
// record per line; nested guest/service data uses secondary separators.
package transfer

import (
	"bufio"
	"fmt"
	"io"
	"time"
)

// DateLayout is the wire format of all dates in the transfer files.
const DateLayout = "2006-01-02"

// Codec serializes one entity type to and from its CSV line form.
type Codec[T any] interface {
	Header() string
	Format(item T) string
	Parse(line string) (T, error)
}

// Export writes the header followed by one line per item.
func Export[T any](w io.Writer, items []T, c Codec[T]) error {
	if _, err := fmt.Fprintln(w, c.Header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, item := range items {
		if _, err := fmt.Fprintln(w, c.Format(item)); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	return nil
}

// Import reads records from r, skipping the header line and blank lines.
func Import[T any](r io.Reader, c Codec[T]) ([]T, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var items []T
	first := true
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if first {
			first = false
			continue
		}
		if line == "" {
			continue
		}
		item, err := c.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read import data: %w", err)
	}
	return items, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("bad date %q: %w", s, err)
	}
	t = t.UTC()
	return &t, nil
}

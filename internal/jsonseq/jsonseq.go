// Copyright (C) 2025 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package jsonseq exposes JSON lines streams as ordered sequences of rows,
// for feeding the ordered transforms from the command line.
package jsonseq

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds a single JSON line.
const maxLineSize = 16 * 1024 * 1024

// Row is a single decoded JSON object.
type Row map[string]any

// Sequence reads rows from a JSON lines stream. It implements
// ordered.Sequence[Row].
type Sequence struct {
	scanner *bufio.Scanner
	closer  io.Closer
	line    int
	closed  bool
}

// NewSequence creates a Sequence over the given stream. The Sequence takes
// ownership of the closer and releases it on Close.
func NewSequence(reader io.ReadCloser) (*Sequence, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader is required")
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return &Sequence{
		scanner: scanner,
		closer:  reader,
	}, nil
}

// Next returns the next decoded row, skipping empty lines.
// Returns io.EOF when the stream is exhausted.
func (s *Sequence) Next(_ context.Context) (Row, error) {
	if s.closed {
		return nil, io.EOF
	}

	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		s.line++
		if line == "" {
			continue
		}

		var row Row
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			return nil, fmt.Errorf("JSON parse error at line %d: %w", s.line, err)
		}
		return row, nil
	}

	if err := s.scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error reading at line %d: %w", s.line+1, err)
	}
	return nil, io.EOF
}

// Close releases the underlying stream.
func (s *Sequence) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.closer.Close()
}

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

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cardinalhq/orderedseq/internal/jsonseq"
	"github.com/cardinalhq/orderedseq/ordered"
)

// openInputs opens the given JSON lines files as one concatenated sequence.
// The path "-" means stdin.
func openInputs(paths []string) (ordered.Sequence[jsonseq.Row], error) {
	if len(paths) == 0 {
		return nil, errors.New("at least one input is required")
	}

	seqs := make([]ordered.Sequence[jsonseq.Row], 0, len(paths))
	closeAll := func() {
		for _, s := range seqs {
			_ = s.Close()
		}
	}

	for _, path := range paths {
		var rc io.ReadCloser
		if path == "-" {
			rc = io.NopCloser(os.Stdin)
		} else {
			f, err := os.Open(path)
			if err != nil {
				closeAll()
				return nil, fmt.Errorf("failed to open %s: %w", path, err)
			}
			rc = f
		}
		seq, err := jsonseq.NewSequence(rc)
		if err != nil {
			_ = rc.Close()
			closeAll()
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		seqs = append(seqs, seq)
	}

	concat, err := ordered.Concat(seqs...)
	if err != nil {
		closeAll()
		return nil, err
	}
	return concat, nil
}

// emitAll drains seq, writing each result as one JSON line to stdout, and
// closes it. Results delivered before a failure are already written when
// the error is returned.
func emitAll[T any](ctx context.Context, seq ordered.Sequence[T]) error {
	defer seq.Close()

	enc := json.NewEncoder(os.Stdout)
	for {
		result, err := seq.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
}

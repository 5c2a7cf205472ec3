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
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/orderedseq/internal/jsonseq"
	"github.com/cardinalhq/orderedseq/ordered"
)

// joinResult is one matched pair.
type joinResult struct {
	Outer jsonseq.Row `json:"outer"`
	Inner jsonseq.Row `json:"inner"`
}

// joinFlags holds the flags shared by join and groupjoin.
type joinFlags struct {
	outerInputs []string
	innerInputs []string
	outerKey    string
	innerKey    string
}

func (f *joinFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.outerInputs, "outer", nil, "outer input files ('-' for stdin)")
	cmd.Flags().StringSliceVar(&f.innerInputs, "inner", nil, "inner input files ('-' for stdin)")
	cmd.Flags().StringVar(&f.outerKey, "outer-key", "", "field the outer input is sorted by")
	cmd.Flags().StringVar(&f.innerKey, "inner-key", "", "field the inner input is sorted by (defaults to --outer-key)")
	_ = cmd.MarkFlagRequired("outer")
	_ = cmd.MarkFlagRequired("inner")
	_ = cmd.MarkFlagRequired("outer-key")
}

// open opens both sides; on error nothing stays open.
func (f *joinFlags) open() (outer, inner ordered.Sequence[jsonseq.Row], outerKey, innerKey func(jsonseq.Row) jsonseq.Key, err error) {
	if f.innerKey == "" {
		f.innerKey = f.outerKey
	}

	outer, err = openInputs(f.outerInputs)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	inner, err = openInputs(f.innerInputs)
	if err != nil {
		_ = outer.Close()
		return nil, nil, nil, nil, err
	}
	return outer, inner, jsonseq.Selector(f.outerKey), jsonseq.Selector(f.innerKey), nil
}

func init() {
	var flags joinFlags

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Merge-join two sorted streams, one result per matching pair",
		RunE: func(c *cobra.Command, _ []string) error {
			c.SilenceUsage = true

			outer, inner, outerKey, innerKey, err := flags.open()
			if err != nil {
				return err
			}

			seq, err := ordered.JoinFunc(outer, inner, outerKey, innerKey,
				func(o, i jsonseq.Row) joinResult { return joinResult{Outer: o, Inner: i} },
				jsonseq.Compare)
			if err != nil {
				_ = outer.Close()
				_ = inner.Close()
				return err
			}

			if err := emitAll(c.Context(), seq); err != nil {
				slog.Error("join failed",
					slog.String("outerKey", flags.outerKey),
					slog.String("innerKey", flags.innerKey),
					slog.Any("error", err))
				return err
			}
			return nil
		},
	}

	flags.register(cmd)
	rootCmd.AddCommand(cmd)
}

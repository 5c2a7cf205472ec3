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

func init() {
	var keyField string
	var inputs []string

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Validate key order while passing rows through",
		RunE: func(c *cobra.Command, _ []string) error {
			c.SilenceUsage = true

			source, err := openInputs(inputs)
			if err != nil {
				return err
			}

			seq, err := ordered.SelectFunc(source,
				jsonseq.Selector(keyField),
				func(_ jsonseq.Key, row jsonseq.Row) jsonseq.Row { return row },
				jsonseq.Compare)
			if err != nil {
				_ = source.Close()
				return err
			}

			if err := emitAll(c.Context(), seq); err != nil {
				slog.Error("projection failed", slog.String("key", keyField), slog.Any("error", err))
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&keyField, "key", "", "field the input is sorted by")
	cmd.Flags().StringSliceVar(&inputs, "input", []string{"-"}, "input files ('-' for stdin)")
	_ = cmd.MarkFlagRequired("key")

	rootCmd.AddCommand(cmd)
}

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

// groupJoinResult is one outer row with every inner row sharing its key.
type groupJoinResult struct {
	Outer   jsonseq.Row   `json:"outer"`
	Matches []jsonseq.Row `json:"matches"`
}

func init() {
	var flags joinFlags

	cmd := &cobra.Command{
		Use:   "groupjoin",
		Short: "Merge-join two sorted streams, one result per outer row",
		Long: `Merge-join two sorted streams, pairing each outer row with the full
set of inner rows sharing its key. Outer rows with no match are emitted
with an empty match list.`,
		RunE: func(c *cobra.Command, _ []string) error {
			c.SilenceUsage = true

			outer, inner, outerKey, innerKey, err := flags.open()
			if err != nil {
				return err
			}

			seq, err := ordered.GroupJoinFunc(outer, inner, outerKey, innerKey,
				func(o jsonseq.Row, g *ordered.Group[jsonseq.Key, jsonseq.Row]) groupJoinResult {
					return groupJoinResult{Outer: o, Matches: g.Slice()}
				},
				jsonseq.Compare)
			if err != nil {
				_ = outer.Close()
				_ = inner.Close()
				return err
			}

			if err := emitAll(c.Context(), seq); err != nil {
				slog.Error("group join failed",
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

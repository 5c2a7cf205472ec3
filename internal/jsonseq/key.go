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

package jsonseq

import (
	"cmp"
	"fmt"
)

// Key is a sort key extracted from one JSON field, normalized so that rows
// keyed by numbers and rows keyed by strings compare consistently. Missing
// fields sort before everything else; numbers sort before strings.
type Key struct {
	str   string
	num   float64
	class int8 // 0 = missing, 1 = numeric, 2 = string
}

// KeyOf extracts the sort key for field from a row. JSON numbers decode as
// float64; booleans and other scalars fall back to their string form.
func KeyOf(row Row, field string) Key {
	val, ok := row[field]
	if !ok || val == nil {
		return Key{}
	}
	switch v := val.(type) {
	case float64:
		return Key{num: v, class: 1}
	case string:
		return Key{str: v, class: 2}
	default:
		return Key{str: fmt.Sprint(v), class: 2}
	}
}

// Selector returns a key selector for the given field, in the shape the
// ordered transforms expect.
func Selector(field string) func(Row) Key {
	return func(row Row) Key {
		return KeyOf(row, field)
	}
}

// Compare orders keys: missing, then numeric, then string.
func Compare(a, b Key) int {
	if c := cmp.Compare(a.class, b.class); c != 0 {
		return c
	}
	switch a.class {
	case 1:
		return cmp.Compare(a.num, b.num)
	case 2:
		return cmp.Compare(a.str, b.str)
	default:
		return 0
	}
}

// Value returns the key in a form suitable for JSON output.
func (k Key) Value() any {
	switch k.class {
	case 1:
		return k.num
	case 2:
		return k.str
	default:
		return nil
	}
}

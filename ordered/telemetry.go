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

package ordered

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

var (
	elementsOutCounter     otelmetric.Int64Counter
	groupsEmittedCounter   otelmetric.Int64Counter
	orderViolationsCounter otelmetric.Int64Counter
)

func init() {
	meter := otel.Meter("github.com/cardinalhq/orderedseq/ordered")

	var err error
	elementsOutCounter, err = meter.Int64Counter(
		"orderedseq.elements.out",
		otelmetric.WithDescription("Number of elements yielded by ordered transforms"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create elements.out counter: %w", err))
	}

	groupsEmittedCounter, err = meter.Int64Counter(
		"orderedseq.groups.emitted",
		otelmetric.WithDescription("Number of contiguous key runs emitted by grouping transforms"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create groups.emitted counter: %w", err))
	}

	orderViolationsCounter, err = meter.Int64Counter(
		"orderedseq.order.violations",
		otelmetric.WithDescription("Number of sort order violations detected in input sequences"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create order.violations counter: %w", err))
	}
}

func recordYield(ctx context.Context, op string) {
	elementsOutCounter.Add(ctx, 1, otelmetric.WithAttributes(attribute.String("operation", op)))
}

func recordGroup(ctx context.Context, op string) {
	groupsEmittedCounter.Add(ctx, 1, otelmetric.WithAttributes(attribute.String("operation", op)))
}

func recordViolation(ctx context.Context, op string) {
	orderViolationsCounter.Add(ctx, 1, otelmetric.WithAttributes(attribute.String("operation", op)))
}

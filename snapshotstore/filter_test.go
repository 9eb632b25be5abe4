package snapshotstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/qsimkit/circuit-snapshots-go/snapshotstore"
)

//nolint:funlen
func Test_FilterBuilder_ValidCombinations(t *testing.T) {
	tests := []struct {
		name     string
		build    func() snapshotstore.Filter
		validate func(t *testing.T, filter snapshotstore.Filter)
	}{
		{
			name: "matching_any_snapshot_creates_empty_filter",
			build: func() snapshotstore.Filter {
				return snapshotstore.BuildSnapshotFilter().MatchingAnySnapshot()
			},
			validate: func(t *testing.T, f snapshotstore.Filter) {
				assert.Empty(t, f.Items())
				assert.True(t, f.TakenFrom().IsZero())
				assert.True(t, f.TakenUntil().IsZero())
				assert.Equal(t, uint(0), f.SequenceNumberHigherThan())
			},
		},
		{
			name: "sequence_only_filter",
			build: func() snapshotstore.Filter {
				return snapshotstore.BuildSnapshotFilter().
					WithSequenceNumberHigherThan(12345).
					Finalize()
			},
			validate: func(t *testing.T, f snapshotstore.Filter) {
				assert.Equal(t, uint(12345), f.SequenceNumberHigherThan())
				assert.True(t, f.TakenFrom().IsZero())
				assert.True(t, f.TakenUntil().IsZero())
				assert.Len(t, f.Items(), 1)
				assert.Empty(t, f.Items()[0].SnapshotTypes())
				assert.Empty(t, f.Items()[0].Predicates())
			},
		},
		{
			name: "taken_from_only_filter",
			build: func() snapshotstore.Filter {
				timeFrom := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
				return snapshotstore.BuildSnapshotFilter().
					TakenFrom(timeFrom).
					Finalize()
			},
			validate: func(t *testing.T, f snapshotstore.Filter) {
				expectedTime := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
				assert.Equal(t, expectedTime, f.TakenFrom())
				assert.True(t, f.TakenUntil().IsZero())
				assert.Equal(t, uint(0), f.SequenceNumberHigherThan())
				assert.Len(t, f.Items(), 1)
				assert.Empty(t, f.Items()[0].SnapshotTypes())
				assert.Empty(t, f.Items()[0].Predicates())
			},
		},
		{
			name: "taken_from_and_until_filter",
			build: func() snapshotstore.Filter {
				timeFrom := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
				timeUntil := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)
				return snapshotstore.BuildSnapshotFilter().
					TakenFrom(timeFrom).
					AndTakenUntil(timeUntil).
					Finalize()
			},
			validate: func(t *testing.T, f snapshotstore.Filter) {
				expectedFrom := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
				expectedUntil := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)
				assert.Equal(t, expectedFrom, f.TakenFrom())
				assert.Equal(t, expectedUntil, f.TakenUntil())
				assert.Equal(t, uint(0), f.SequenceNumberHigherThan())
				assert.Len(t, f.Items(), 1)
			},
		},
		{
			name: "single_snapshot_type_filter",
			build: func() snapshotstore.Filter {
				return snapshotstore.BuildSnapshotFilter().
					Matching().
					AnySnapshotTypeOf("stabilizer").
					Finalize()
			},
			validate: func(t *testing.T, f snapshotstore.Filter) {
				assert.True(t, f.TakenFrom().IsZero())
				assert.True(t, f.TakenUntil().IsZero())
				assert.Equal(t, uint(0), f.SequenceNumberHigherThan())
				assert.Len(t, f.Items(), 1)
				assert.Equal(t, []string{"stabilizer"}, f.Items()[0].SnapshotTypes())
				assert.Empty(t, f.Items()[0].Predicates())
				assert.False(t, f.Items()[0].AllPredicatesMustMatch())
			},
		},
		{
			name: "multiple_snapshot_types_are_sorted_and_deduplicated",
			build: func() snapshotstore.Filter {
				return snapshotstore.BuildSnapshotFilter().
					Matching().
					AnySnapshotTypeOf("statevector", "stabilizer", "statevector", "").
					Finalize()
			},
			validate: func(t *testing.T, f snapshotstore.Filter) {
				assert.Len(t, f.Items(), 1)
				assert.Equal(t, []string{"stabilizer", "statevector"}, f.Items()[0].SnapshotTypes())
			},
		},
		{
			name: "snapshot_type_and_any_predicate_filter",
			build: func() snapshotstore.Filter {
				return snapshotstore.BuildSnapshotFilter().
					Matching().
					AnySnapshotTypeOf("expectation_value_pauli").
					AndAnyPredicateOf(snapshotstore.P("experiment", "bell"), snapshotstore.P("backend", "qasm_simulator")).
					Finalize()
			},
			validate: func(t *testing.T, f snapshotstore.Filter) {
				assert.Len(t, f.Items(), 1)
				assert.Equal(t, []string{"expectation_value_pauli"}, f.Items()[0].SnapshotTypes())
				assert.Len(t, f.Items()[0].Predicates(), 2)
				assert.False(t, f.Items()[0].AllPredicatesMustMatch())
			},
		},
		{
			name: "snapshot_type_and_all_predicates_filter",
			build: func() snapshotstore.Filter {
				return snapshotstore.BuildSnapshotFilter().
					Matching().
					AnySnapshotTypeOf("stabilizer").
					AndAllPredicatesOf(snapshotstore.P("experiment", "bell"), snapshotstore.P("shot", "7")).
					Finalize()
			},
			validate: func(t *testing.T, f snapshotstore.Filter) {
				assert.Len(t, f.Items(), 1)
				assert.Len(t, f.Items()[0].Predicates(), 2)
				assert.True(t, f.Items()[0].AllPredicatesMustMatch())
			},
		},
		{
			name: "predicates_only_filter",
			build: func() snapshotstore.Filter {
				return snapshotstore.BuildSnapshotFilter().
					Matching().
					AnyPredicateOf(snapshotstore.P("experiment", "bell")).
					Finalize()
			},
			validate: func(t *testing.T, f snapshotstore.Filter) {
				assert.Len(t, f.Items(), 1)
				assert.Empty(t, f.Items()[0].SnapshotTypes())
				assert.Len(t, f.Items()[0].Predicates(), 1)
				assert.Equal(t, "experiment", f.Items()[0].Predicates()[0].Key())
				assert.Equal(t, "bell", f.Items()[0].Predicates()[0].Val())
			},
		},
		{
			name: "predicates_are_sorted_by_key_and_partial_ones_removed",
			build: func() snapshotstore.Filter {
				return snapshotstore.BuildSnapshotFilter().
					Matching().
					AnyPredicateOf(
						snapshotstore.P("shot", "7"),
						snapshotstore.P("experiment", "bell"),
						snapshotstore.P("", "orphan"),
						snapshotstore.P("orphan", ""),
					).
					Finalize()
			},
			validate: func(t *testing.T, f snapshotstore.Filter) {
				assert.Len(t, f.Items(), 1)
				predicates := f.Items()[0].Predicates()
				assert.Len(t, predicates, 2)
				assert.Equal(t, "experiment", predicates[0].Key())
				assert.Equal(t, "shot", predicates[1].Key())
			},
		},
		{
			name: "multiple_filter_items_with_or_matching",
			build: func() snapshotstore.Filter {
				return snapshotstore.BuildSnapshotFilter().
					Matching().
					AnySnapshotTypeOf("stabilizer").
					AndAnyPredicateOf(snapshotstore.P("experiment", "bell")).
					OrMatching().
					AnySnapshotTypeOf("statevector").
					AndAnyPredicateOf(snapshotstore.P("experiment", "ghz")).
					Finalize()
			},
			validate: func(t *testing.T, f snapshotstore.Filter) {
				assert.Len(t, f.Items(), 2)
				assert.Equal(t, []string{"stabilizer"}, f.Items()[0].SnapshotTypes())
				assert.Equal(t, []string{"statevector"}, f.Items()[1].SnapshotTypes())
			},
		},
		{
			name: "filter_item_with_time_range_and_sequence_restrictions",
			build: func() snapshotstore.Filter {
				timeFrom := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
				return snapshotstore.BuildSnapshotFilter().
					Matching().
					AnySnapshotTypeOf("density_matrix").
					AndTakenFrom(timeFrom).
					Finalize()
			},
			validate: func(t *testing.T, f snapshotstore.Filter) {
				expectedFrom := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
				assert.Equal(t, expectedFrom, f.TakenFrom())
				assert.Len(t, f.Items(), 1)
				assert.Equal(t, []string{"density_matrix"}, f.Items()[0].SnapshotTypes())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := tt.build()
			tt.validate(t, filter)
		})
	}
}

func Test_FilterBuilder_PredicateAccessors(t *testing.T) {
	predicate := snapshotstore.P("experiment", "bell")

	assert.Equal(t, "experiment", predicate.Key())
	assert.Equal(t, "bell", predicate.Val())
}

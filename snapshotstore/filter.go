package snapshotstore

import (
	"slices"
	"time"
)

type FilterSnapshotTypeString = string
type FilterKeyString = string
type FilterValString = string

/***** Filter *****/

type Filter struct {
	items                    []FilterItem
	takenFrom                time.Time
	takenUntil               time.Time
	sequenceNumberHigherThan MaxSequenceNumberUint
}

func (f Filter) Items() []FilterItem {
	return f.items
}

func (f Filter) TakenFrom() time.Time {
	return f.takenFrom
}

func (f Filter) TakenUntil() time.Time {
	return f.takenUntil
}

func (f Filter) SequenceNumberHigherThan() MaxSequenceNumberUint {
	return f.sequenceNumberHigherThan
}

/***** FilterItem *****/

type FilterItem struct {
	snapshotTypes          []FilterSnapshotTypeString
	predicates             []FilterPredicate
	allPredicatesMustMatch bool
}

func (fi FilterItem) SnapshotTypes() []FilterSnapshotTypeString {
	return fi.snapshotTypes
}

func (fi FilterItem) Predicates() []FilterPredicate {
	return fi.predicates
}

func (fi FilterItem) AllPredicatesMustMatch() bool {
	return fi.allPredicatesMustMatch
}

/***** FilterPredicate *****/

type FilterPredicate struct {
	key FilterKeyString
	val FilterValString
}

func P(key FilterKeyString, val FilterValString) FilterPredicate {
	return FilterPredicate{key: key, val: val}
}

func (fp FilterPredicate) Key() FilterKeyString {
	return fp.key
}

func (fp FilterPredicate) Val() FilterValString {
	return fp.val
}

/***** FilterBuilder *****/

// FilterBuilder builds a generic snapshot filter to be used in DB type-specific snapshot store implementations
// to build queries for the specific query language, e.g.: Postgres, Mysql, MongoDB, ...
// It is designed with the idea to only allow "useful" filter combinations for snapshot archive workflows:
//
//   - empty filter
//   - (snapshotType)
//   - (snapshotType OR snapshotType...)
//   - (predicate)
//   - (predicate OR predicate...)
//   - (predicate AND predicate...)
//   - (snapshotType AND predicate)
//   - (snapshotType AND (predicate OR predicate...))
//   - (snapshotType AND (predicate AND predicate...))
//   - ((snapshotType OR snapshotType...) AND (predicate OR predicate...))
//   - ((snapshotType OR snapshotType...) AND (predicate AND predicate...))
//   - ((snapshotType AND predicate) OR (snapshotType AND predicate)...) -> multiple FilterItem(s)
//
// each optionally restricted to a taken-from/until time range and/or a sequence number floor.
type FilterBuilder interface {
	// Matching starts a new FilterItem.
	Matching() EmptyFilterItemBuilder

	// MatchingAnySnapshot directly creates an empty Filter.
	MatchingAnySnapshot() Filter

	// TakenFrom restricts the filter to snapshots taken at or after the given time.
	TakenFrom(from time.Time) TimeRangeFilterBuilder

	// TakenUntil restricts the filter to snapshots taken at or before the given time.
	TakenUntil(until time.Time) CompletedFilterBuilder

	// WithSequenceNumberHigherThan restricts the filter to snapshots with a higher sequence number.
	WithSequenceNumberHigherThan(sequenceNumber MaxSequenceNumberUint) CompletedFilterBuilder
}

type TimeRangeFilterBuilder interface {
	// AndTakenUntil additionally restricts the filter to snapshots taken at or before the given time.
	AndTakenUntil(until time.Time) CompletedFilterBuilder

	// Finalize returns the Filter.
	Finalize() Filter
}

type CompletedFilterBuilder interface {
	// Finalize returns the Filter.
	Finalize() Filter
}

type EmptyFilterItemBuilder interface {
	// AnySnapshotTypeOf adds one or multiple snapshot types to the current FilterItem.
	//
	// It sanitizes the input:
	//	- removing empty snapshot types ("")
	//	- sorting the snapshot types
	//	- removing duplicate snapshot types
	AnySnapshotTypeOf(snapshotType FilterSnapshotTypeString, snapshotTypes ...FilterSnapshotTypeString) FilterItemBuilderLackingPredicates

	// AnyPredicateOf adds one or multiple FilterPredicate(s) to the current FilterItem.
	//
	// It sanitizes the input:
	//	- removing empty/partial FilterPredicate(s) (key or val is "")
	//	- sorting the FilterPredicate(s)
	//	- removing duplicate FilterPredicate(s)
	AnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingSnapshotTypes

	AllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingSnapshotTypes
}

type FilterItemBuilderLackingPredicates interface {
	// AndAnyPredicateOf adds one or multiple FilterPredicate(s) to the current FilterItem.
	//
	// It sanitizes the input:
	//	- removing empty/partial FilterPredicate(s) (key or val is "")
	//	- sorting the FilterPredicate(s)
	//	- removing duplicate FilterPredicate(s)
	AndAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder

	AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder

	// OrMatching finalizes the current FilterItem and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	// AndTakenFrom restricts the filter to snapshots taken at or after the given time.
	AndTakenFrom(from time.Time) TimeRangeFilterBuilder

	// Finalize returns the Filter once it has at least one FilterItem with at least one snapshot type OR one Predicate.
	Finalize() Filter
}

type FilterItemBuilderLackingSnapshotTypes interface {
	// AndAnySnapshotTypeOf adds one or multiple snapshot types to the current FilterItem.
	//
	// It sanitizes the input:
	//	- removing empty snapshot types ("")
	//	- sorting the snapshot types
	//	- removing duplicate snapshot types
	AndAnySnapshotTypeOf(snapshotType FilterSnapshotTypeString, snapshotTypes ...FilterSnapshotTypeString) CompletedFilterItemBuilder

	// OrMatching finalizes the current FilterItem and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	// AndTakenFrom restricts the filter to snapshots taken at or after the given time.
	AndTakenFrom(from time.Time) TimeRangeFilterBuilder

	// Finalize returns the Filter once it has at least one FilterItem with at least one snapshot type OR one Predicate.
	Finalize() Filter
}

type CompletedFilterItemBuilder interface {
	// OrMatching finalizes the current FilterItem and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	// AndTakenFrom restricts the filter to snapshots taken at or after the given time.
	AndTakenFrom(from time.Time) TimeRangeFilterBuilder

	// Finalize returns the Filter once it has at least one FilterItem with at least one snapshot type OR one Predicate.
	Finalize() Filter
}

// filterBuilder implements all the interfaces of FilterBuilder.
type filterBuilder struct {
	filter            Filter
	currentFilterItem FilterItem
}

// BuildSnapshotFilter creates a FilterBuilder which must eventually be finalized with Finalize() or MatchingAnySnapshot().
func BuildSnapshotFilter() FilterBuilder {
	return filterBuilder{}
}

// Matching starts a new FilterItem.
func (fb filterBuilder) Matching() EmptyFilterItemBuilder {
	fb.currentFilterItem = FilterItem{}

	return fb
}

// AnySnapshotTypeOf adds one or multiple snapshot types to the current FilterItem expecting ANY of them to match.
//
// It sanitizes the input:
//   - removing empty snapshot types ("")
//   - sorting the snapshot types
//   - removing duplicate snapshot types
func (fb filterBuilder) AnySnapshotTypeOf(
	snapshotType FilterSnapshotTypeString,
	snapshotTypes ...FilterSnapshotTypeString,
) FilterItemBuilderLackingPredicates {

	fb.currentFilterItem.snapshotTypes = append(
		fb.currentFilterItem.snapshotTypes,
		fb.sanitizeSnapshotTypes(snapshotType, snapshotTypes...)...,
	)

	return fb
}

// AndAnySnapshotTypeOf adds one or multiple snapshot types to the current FilterItem expecting ANY of them to match.
//
// It sanitizes the input:
//   - removing empty snapshot types ("")
//   - sorting the snapshot types
//   - removing duplicate snapshot types
func (fb filterBuilder) AndAnySnapshotTypeOf(
	snapshotType FilterSnapshotTypeString,
	snapshotTypes ...FilterSnapshotTypeString,
) CompletedFilterItemBuilder {

	fb.currentFilterItem.snapshotTypes = append(
		fb.currentFilterItem.snapshotTypes,
		fb.sanitizeSnapshotTypes(snapshotType, snapshotTypes...)...,
	)

	return fb
}

func (fb filterBuilder) sanitizeSnapshotTypes(
	snapshotType FilterSnapshotTypeString,
	snapshotTypes ...FilterSnapshotTypeString,
) []FilterSnapshotTypeString {

	allSnapshotTypes := append([]FilterSnapshotTypeString{snapshotType}, snapshotTypes...)
	allSnapshotTypes = slices.DeleteFunc(
		allSnapshotTypes,
		func(t FilterSnapshotTypeString) bool {
			return t == ""
		})
	slices.Sort(allSnapshotTypes)
	allSnapshotTypes = slices.Compact(allSnapshotTypes)
	allSnapshotTypes = slices.Clip(allSnapshotTypes)

	return allSnapshotTypes
}

// AnyPredicateOf adds one or multiple FilterPredicate(s) to the current FilterItem expecting ANY predicate to match.
//
// It sanitizes the input:
//   - removing empty/partial FilterPredicate(s) (key or val is "")
//   - sorting the FilterPredicate(s)
//   - removing duplicate FilterPredicate(s)
func (fb filterBuilder) AnyPredicateOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) FilterItemBuilderLackingSnapshotTypes {

	fb.currentFilterItem.predicates = append(
		fb.currentFilterItem.predicates,
		fb.sanitizePredicates(predicate, predicates...)...,
	)

	return fb
}

// AndAnyPredicateOf adds one or multiple FilterPredicate(s) to the current FilterItem expecting ANY predicate to match.
//
// It sanitizes the input:
//   - removing empty/partial FilterPredicate(s) (key or val is "")
//   - sorting the FilterPredicate(s)
//   - removing duplicate FilterPredicate(s)
func (fb filterBuilder) AndAnyPredicateOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) CompletedFilterItemBuilder {

	fb.currentFilterItem.predicates = append(
		fb.currentFilterItem.predicates,
		fb.sanitizePredicates(predicate, predicates...)...,
	)

	return fb
}

// AllPredicatesOf adds one or multiple FilterPredicate(s) to the current FilterItem expecting ALL predicates to match.
//
// It sanitizes the input:
//   - removing empty/partial FilterPredicate(s) (key or val is "")
//   - sorting the FilterPredicate(s)
//   - removing duplicate FilterPredicate(s)
func (fb filterBuilder) AllPredicatesOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) FilterItemBuilderLackingSnapshotTypes {

	fb.currentFilterItem.allPredicatesMustMatch = true

	fb.currentFilterItem.predicates = append(
		fb.currentFilterItem.predicates,
		fb.sanitizePredicates(predicate, predicates...)...,
	)

	return fb
}

// AndAllPredicatesOf adds one or multiple FilterPredicate(s) to the current FilterItem expecting ALL predicates to match.
//
// It sanitizes the input:
//   - removing empty/partial FilterPredicate(s) (key or val is "")
//   - sorting the FilterPredicate(s)
//   - removing duplicate FilterPredicate(s)
func (fb filterBuilder) AndAllPredicatesOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) CompletedFilterItemBuilder {

	fb.currentFilterItem.allPredicatesMustMatch = true

	fb.currentFilterItem.predicates = append(
		fb.currentFilterItem.predicates,
		fb.sanitizePredicates(predicate, predicates...)...,
	)

	return fb
}

func (fb filterBuilder) sanitizePredicates(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) []FilterPredicate {

	allPredicates := append([]FilterPredicate{predicate}, predicates...)
	allPredicates = slices.DeleteFunc(allPredicates, func(p FilterPredicate) bool { return len(p.key) == 0 || len(p.val) == 0 })
	slices.SortFunc(
		allPredicates,
		func(a, b FilterPredicate) int {
			if a.key > b.key {
				return 1
			}

			if a.key < b.key {
				return -1
			}

			return 0
		})

	allPredicates = slices.Compact(allPredicates)
	allPredicates = slices.Clip(allPredicates)

	return allPredicates
}

// TakenFrom restricts the filter to snapshots taken at or after the given time.
func (fb filterBuilder) TakenFrom(from time.Time) TimeRangeFilterBuilder {
	fb.filter.takenFrom = from

	return fb
}

// AndTakenFrom restricts the filter to snapshots taken at or after the given time.
func (fb filterBuilder) AndTakenFrom(from time.Time) TimeRangeFilterBuilder {
	fb.filter.takenFrom = from

	return fb
}

// TakenUntil restricts the filter to snapshots taken at or before the given time.
func (fb filterBuilder) TakenUntil(until time.Time) CompletedFilterBuilder {
	fb.filter.takenUntil = until

	return fb
}

// AndTakenUntil additionally restricts the filter to snapshots taken at or before the given time.
func (fb filterBuilder) AndTakenUntil(until time.Time) CompletedFilterBuilder {
	fb.filter.takenUntil = until

	return fb
}

// WithSequenceNumberHigherThan restricts the filter to snapshots with a higher sequence number.
func (fb filterBuilder) WithSequenceNumberHigherThan(sequenceNumber MaxSequenceNumberUint) CompletedFilterBuilder {
	fb.filter.sequenceNumberHigherThan = sequenceNumber

	return fb
}

// OrMatching finalizes the current FilterItem and starts a new one.
func (fb filterBuilder) OrMatching() EmptyFilterItemBuilder {
	fb.filter.items = append(fb.filter.items, fb.currentFilterItem)
	fb.currentFilterItem = FilterItem{}

	return fb
}

// MatchingAnySnapshot directly creates an empty filter.
func (fb filterBuilder) MatchingAnySnapshot() Filter {
	return fb.filter
}

// Finalize returns the Filter.
func (fb filterBuilder) Finalize() Filter {
	fb.filter.items = append(fb.filter.items, fb.currentFilterItem)

	return fb.filter
}

package snapshotstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qsimkit/circuit-snapshots-go/snapshotstore"
)

func Test_GetConsistencyLevel_DefaultsToStrong(t *testing.T) {
	level := snapshotstore.GetConsistencyLevel(context.Background())

	assert.Equal(t, snapshotstore.StrongConsistency, level)
}

func Test_WithEventualConsistency(t *testing.T) {
	ctx := snapshotstore.WithEventualConsistency(context.Background())

	assert.Equal(t, snapshotstore.EventualConsistency, snapshotstore.GetConsistencyLevel(ctx))
}

func Test_WithStrongConsistency_OverridesEventual(t *testing.T) {
	ctx := snapshotstore.WithEventualConsistency(context.Background())
	ctx = snapshotstore.WithStrongConsistency(ctx)

	assert.Equal(t, snapshotstore.StrongConsistency, snapshotstore.GetConsistencyLevel(ctx))
}

func Test_ConsistencyLevel_String(t *testing.T) {
	assert.Equal(t, "strong", snapshotstore.StrongConsistency.String())
	assert.Equal(t, "eventual", snapshotstore.EventualConsistency.String())
}

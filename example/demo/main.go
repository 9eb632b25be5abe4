// Demo builds a small circuit with snapshot instructions, prints its qobj
// serialization, and archives the snapshot output of a fake simulation run
// in the Postgres snapshot store.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qsimkit/circuit-snapshots-go/circuit"
	"github.com/qsimkit/circuit-snapshots-go/snapshotstore"
	"github.com/qsimkit/circuit-snapshots-go/snapshotstore/oteladapters"
	"github.com/qsimkit/circuit-snapshots-go/snapshotstore/postgresengine"
	"github.com/qsimkit/circuit-snapshots-go/testutil/config"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Demo failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	circ, buildErr := buildBellCircuit()
	if buildErr != nil {
		return fmt.Errorf("failed to build circuit: %w", buildErr)
	}

	qobjJSON, marshalErr := circ.MarshalQobj()
	if marshalErr != nil {
		return fmt.Errorf("failed to marshal circuit: %w", marshalErr)
	}

	log.Printf("qobj experiment: %s", qobjJSON)

	providers, obsErr := config.NewObservabilityConfig()
	if obsErr != nil {
		return fmt.Errorf("failed to set up observability: %w", obsErr)
	}
	defer func() {
		if shutdownErr := providers.Shutdown(); shutdownErr != nil {
			log.Printf("observability shutdown failed: %v", shutdownErr)
		}
	}()

	store, pool, storeErr := initializeSnapshotStore(ctx, providers)
	if storeErr != nil {
		return storeErr
	}
	defer pool.Close()

	return archiveSimulationOutput(ctx, store, circ)
}

// buildBellCircuit prepares a Bell pair and requests a stabilizer snapshot
// plus a ZZ expectation value snapshot with variance.
func buildBellCircuit() (*circuit.Circuit, error) {
	qreg, err := circuit.BuildQuantumRegister("q", 2)
	if err != nil {
		return nil, err
	}

	creg, err := circuit.BuildClassicalRegister("c", 2)
	if err != nil {
		return nil, err
	}

	circ, err := circuit.NewCircuitWithRegisters("bell", qreg, creg)
	if err != nil {
		return nil, err
	}

	if err = circ.H(0); err != nil {
		return nil, err
	}

	if err = circ.CX(0, 1); err != nil {
		return nil, err
	}

	if err = circ.SnapshotStabilizer("bell_state"); err != nil {
		return nil, err
	}

	zz, err := circuit.BuildPauliOperator(circuit.PauliTerm{Coeff: 1, Paulis: "ZZ"})
	if err != nil {
		return nil, err
	}

	if err = circ.SnapshotExpectationValueWithVariance("zz_corr", zz); err != nil {
		return nil, err
	}

	if err = circ.Measure(0, 0); err != nil {
		return nil, err
	}

	if err = circ.Measure(1, 1); err != nil {
		return nil, err
	}

	return circ, nil
}

func initializeSnapshotStore(
	ctx context.Context,
	providers *config.ObservabilityProviders,
) (*postgresengine.SnapshotStore, *pgxpool.Pool, error) {

	pool, err := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolSingleConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	store, err := postgresengine.NewSnapshotStoreFromPGXPool(
		pool,
		postgresengine.WithTableName("circuit_snapshots"),
		postgresengine.WithLogger(logger),
		postgresengine.WithContextualLogger(oteladapters.NewSlogBridgeLogger("snapshotstore-demo")),
		postgresengine.WithMetrics(oteladapters.NewMetricsCollector(providers.MeterProvider.Meter("snapshotstore-demo"))),
		postgresengine.WithTracing(oteladapters.NewTracingCollector(providers.TracerProvider.Tracer("snapshotstore-demo"))),
	)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to create snapshot store: %w", err)
	}

	return store, pool, nil
}

// archiveSimulationOutput stores the snapshot data a simulator run would emit
// for the demo circuit, guarded by the stream's current max sequence number.
func archiveSimulationOutput(ctx context.Context, store *postgresengine.SnapshotStore, circ *circuit.Circuit) error {
	filter := snapshotstore.BuildSnapshotFilter().
		Matching().
		AnySnapshotTypeOf(circuit.SnapshotTypeStabilizer, circuit.SnapshotTypeExpectationValuePauliWithVariance).
		AndAnyPredicateOf(snapshotstore.P("experiment", circ.Name())).
		Finalize()

	_, maxSeq, queryErr := store.Query(ctx, filter)
	if queryErr != nil {
		return fmt.Errorf("failed to query snapshot stream: %w", queryErr)
	}

	takenAt := time.Now()

	stabilizerRecord, buildErr := snapshotstore.BuildSnapshotRecordWithEmptyMetadata(
		"bell_state",
		circuit.SnapshotTypeStabilizer,
		takenAt,
		[]byte(fmt.Sprintf(`{"experiment": %q, "stabilizer": ["+XX", "+ZZ"]}`, circ.Name())),
	)
	if buildErr != nil {
		return fmt.Errorf("failed to build stabilizer record: %w", buildErr)
	}

	expValRecord, buildErr := snapshotstore.BuildSnapshotRecordWithEmptyMetadata(
		"zz_corr",
		circuit.SnapshotTypeExpectationValuePauliWithVariance,
		takenAt,
		[]byte(fmt.Sprintf(`{"experiment": %q, "value": 1.0, "variance": 0.0}`, circ.Name())),
	)
	if buildErr != nil {
		return fmt.Errorf("failed to build expectation value record: %w", buildErr)
	}

	if appendErr := store.Append(ctx, filter, maxSeq, stabilizerRecord, expValRecord); appendErr != nil {
		return fmt.Errorf("failed to append snapshot records: %w", appendErr)
	}

	log.Printf("archived %d snapshot records for experiment %q", 2, circ.Name())

	return nil
}

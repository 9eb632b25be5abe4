package config

import (
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPGXPoolSingleConfig creates a pgxpool.Config for the single-node snapshot archive.
func PostgresPGXPoolSingleConfig() *pgxpool.Config {
	return pgxPoolConfigForDSN(PostgresSingleDSN())
}

// PostgresPGXPoolPrimaryConfig creates a pgxpool.Config for the primary node of a replicated snapshot archive.
func PostgresPGXPoolPrimaryConfig() *pgxpool.Config {
	return pgxPoolConfigForDSN(PostgresPrimaryDSN())
}

// PostgresPGXPoolReplicaConfig creates a pgxpool.Config for the replica node of a replicated snapshot archive.
func PostgresPGXPoolReplicaConfig() *pgxpool.Config {
	return pgxPoolConfigForDSN(PostgresReplicaDSN())
}

func pgxPoolConfigForDSN(dsn string) *pgxpool.Config {
	const defaultMaxConnections = int32(8)
	const defaultMinConnections = int32(2)
	const defaultMaxConnLifetime = time.Hour
	const defaultMaxConnIdleTime = time.Minute * 5
	const defaultHealthCheckPeriod = time.Minute
	const defaultConnectTimeout = time.Second * 5

	dbConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal("Failed to create a config, error: ", err)
	}

	dbConfig.MaxConns = defaultMaxConnections
	dbConfig.MinConns = defaultMinConnections
	dbConfig.MaxConnLifetime = defaultMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	dbConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	return dbConfig
}

// Package testinfra starts throwaway service containers for integration tests
// of the ontology back-ends.
package testinfra

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	PostgresImage    = "postgres:17-alpine"
	PostgresUser     = "mztabm"
	PostgresPassword = "mztabm"
	PostgresDB       = "ontology"

	RedisImage = "redis:7-alpine"

	// ImageOverrideEnv replaces PostgresImage, e.g. with a mirrored image.
	ImageOverrideEnv = "MZTABM_TEST_PG_IMAGE"

	startupTimeout = 60 * time.Second
)

// PostgresContainer is a running term-store server.
type PostgresContainer struct {
	*postgres.PostgresContainer
	ConnString string
}

// RedisContainer is a running lookup cache.
type RedisContainer struct {
	testcontainers.Container
	Addr string
}

func postgresImage() string {
	if img := os.Getenv(ImageOverrideEnv); img != "" {
		return img
	}
	return PostgresImage
}

// StartPostgres runs Postgres without TLS and waits until it accepts
// connections.
func StartPostgres(ctx context.Context) (*PostgresContainer, error) {
	ctr, err := postgres.Run(ctx,
		postgresImage(),
		postgres.WithUsername(PostgresUser),
		postgres.WithPassword(PostgresPassword),
		postgres.WithDatabase(PostgresDB),
		testcontainers.WithWaitStrategy(
			// readiness is logged once by the init run and once for real
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(startupTimeout),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres: %w", err)
	}

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get connection string: %w", err)
	}
	return &PostgresContainer{PostgresContainer: ctr, ConnString: connStr}, nil
}

// StartRedis runs a Redis server and returns its host:port.
func StartRedis(ctx context.Context) (*RedisContainer, error) {
	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        RedisImage,
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(startupTimeout),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("start redis: %w", err)
	}

	addr, err := ctr.Endpoint(ctx, "")
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get redis endpoint: %w", err)
	}
	return &RedisContainer{Container: ctr, Addr: addr}, nil
}

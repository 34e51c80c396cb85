// Package testing holds helpers shared by integration tests.
package testing

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/mztabm/internal/testinfra"
)

// Variables pointing integration tests at existing servers.
const (
	TestDSNEnv   = "MZTABM_TEST_DSN"
	TestRedisEnv = "MZTABM_TEST_REDIS"
)

var (
	containerOnce sync.Once
	containerDSN  string
	containerErr  error

	redisOnce sync.Once
	redisAddr string
	redisErr  error
)

func startContainer() (string, error) {
	containerOnce.Do(func() {
		ctr, err := testinfra.StartPostgres(context.Background())
		if err != nil {
			containerErr = err
			return
		}
		containerDSN = ctr.ConnString
	})
	return containerDSN, containerErr
}

func startRedis() (string, error) {
	redisOnce.Do(func() {
		ctr, err := testinfra.StartRedis(context.Background())
		if err != nil {
			redisErr = err
			return
		}
		redisAddr = ctr.Addr
	})
	return redisAddr, redisErr
}

// SkipIfShort skips the test when running with -short.
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase returns a DSN for a management database.
// Priority: MZTABM_TEST_DSN > auto-started container > skip.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	if dsn := os.Getenv(TestDSNEnv); dsn != "" {
		return dsn
	}
	dsn, err := startContainer()
	if err != nil {
		t.Skipf("%s not set and Docker unavailable: %v", TestDSNEnv, err)
	}
	return dsn
}

// RequireRedis returns the address of a Redis server.
// Priority: MZTABM_TEST_REDIS > auto-started container > skip.
func RequireRedis(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	if addr := os.Getenv(TestRedisEnv); addr != "" {
		return addr
	}
	addr, err := startRedis()
	if err != nil {
		t.Skipf("%s not set and Docker unavailable: %v", TestRedisEnv, err)
	}
	return addr
}

// NewTestPool creates a fresh database on the server behind dsn and returns
// a pool connected to it. The database is dropped when the test ends.
func NewTestPool(t *testing.T, dsn string) *pgxpool.Pool {
	t.Helper()

	ctx := context.Background()
	name := "mztabm_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]

	admin, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to connect for test DB creation: %v", err)
	}
	if _, err := admin.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", name)); err != nil {
		admin.Close()
		t.Fatalf("Failed to create test database %s: %v", name, err)
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		admin.Close()
		t.Fatalf("Failed to parse DSN: %v", err)
	}
	cfg.ConnConfig.Database = name
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		admin.Close()
		t.Fatalf("Failed to connect to test database %s: %v", name, err)
	}

	t.Cleanup(func() {
		pool.Close()
		defer admin.Close()
		_, err := admin.Exec(ctx, `
			SELECT pg_terminate_backend(pid)
			FROM pg_stat_activity
			WHERE datname = $1 AND pid <> pg_backend_pid()`, name)
		if err != nil {
			t.Logf("Warning: Failed to terminate connections to %s: %v", name, err)
		}
		if _, err := admin.Exec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s", name)); err != nil {
			t.Logf("Warning: Failed to drop test database %s: %v", name, err)
		}
	})
	return pool
}

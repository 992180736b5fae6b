//go:build integration

// Package containers starts shared backing services for integration tests.
//
// Containers are started lazily, once per test binary, and reused across
// suites. Suites isolate themselves by flushing or truncating in SetupTest.
// Ryuk removes the containers when the test process exits.
package containers

import (
	"errors"
	"sync"
	"testing"

	"github.com/testcontainers/testcontainers-go"
)

// Manager hands out the shared containers.
type Manager struct {
	mu       sync.Mutex
	postgres *PostgresContainer
	redis    *RedisContainer
	redpanda *RedpandaContainer
}

var (
	manager     *Manager
	managerOnce sync.Once
)

// GetManager returns the process-wide container manager.
func GetManager() *Manager {
	managerOnce.Do(func() {
		manager = &Manager{}
	})
	return manager
}

// GetPostgres returns the shared PostgreSQL container, starting it if needed.
func (m *Manager) GetPostgres(t *testing.T) *PostgresContainer {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.postgres == nil {
		m.postgres = startPostgres(t)
	}
	return m.postgres
}

// GetRedis returns the shared Redis container, starting it if needed.
func (m *Manager) GetRedis(t *testing.T) *RedisContainer {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.redis == nil {
		m.redis = startRedis(t)
	}
	return m.redis
}

// GetRedpanda returns the shared Redpanda container, starting it if needed.
func (m *Manager) GetRedpanda(t *testing.T) *RedpandaContainer {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.redpanda == nil {
		m.redpanda = startRedpanda(t)
	}
	return m.redpanda
}

// Shutdown terminates every started container. Suites that want the
// containers gone before process exit call it from TestMain.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	if m.postgres != nil {
		_ = m.postgres.DB.Close()
		errs = append(errs, testcontainers.TerminateContainer(m.postgres.Container))
		m.postgres = nil
	}
	if m.redis != nil {
		_ = m.redis.Client.Close()
		errs = append(errs, testcontainers.TerminateContainer(m.redis.Container))
		m.redis = nil
	}
	if m.redpanda != nil {
		errs = append(errs, testcontainers.TerminateContainer(m.redpanda.Container))
		m.redpanda = nil
	}
	return errors.Join(errs...)
}

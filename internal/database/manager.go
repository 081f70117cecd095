package database

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DBManager holds the primary pool and any read replicas for the user and
// profile tables.
type DBManager struct {
	primary      *pgxpool.Pool
	replicas     []*pgxpool.Pool
	replicaIndex uint32
}

type Config struct {
	PrimaryDSN  string
	ReplicaDSNs []string

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// NewDBManager connects to the primary and every replica. Reads round-robin
// over the replicas and fall back to the primary when none are configured.
func NewDBManager(ctx context.Context, cfg Config) (*DBManager, error) {
	primary, err := connectPool(ctx, cfg.PrimaryDSN, cfg, "primary")
	if err != nil {
		return nil, err
	}

	replicas := make([]*pgxpool.Pool, 0, len(cfg.ReplicaDSNs))
	for i, dsn := range cfg.ReplicaDSNs {
		replica, err := connectPool(ctx, dsn, cfg, fmt.Sprintf("replica %d", i))
		if err != nil {
			primary.Close()
			closeReplicas(replicas)
			return nil, err
		}
		replicas = append(replicas, replica)
	}

	return &DBManager{primary: primary, replicas: replicas}, nil
}

func connectPool(ctx context.Context, dsn string, cfg Config, name string) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s DSN: %w", name, err)
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", name, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", name, err)
	}
	return pool, nil
}

func (m *DBManager) Write() *pgxpool.Pool {
	return m.primary
}

// Read picks the next replica. Replicas may lag the primary, so only the
// public profile and user reads go through here.
func (m *DBManager) Read() *pgxpool.Pool {
	if len(m.replicas) == 0 {
		return m.primary
	}

	idx := atomic.AddUint32(&m.replicaIndex, 1) % uint32(len(m.replicas))
	return m.replicas[idx]
}

// ReadOwn serves reads that must see this account's latest writes: the
// duplicate email check, login, and every profile read-modify-write.
func (m *DBManager) ReadOwn() *pgxpool.Pool {
	return m.primary
}

func closeReplicas(replicas []*pgxpool.Pool) {
	for _, pool := range replicas {
		if pool != nil {
			pool.Close()
		}
	}
}

func (m *DBManager) Primary() *pgxpool.Pool {
	return m.primary
}

func (m *DBManager) Close() {
	if m.primary != nil {
		m.primary.Close()
	}
	closeReplicas(m.replicas)
}

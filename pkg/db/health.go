package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HealthStatus reports the outcome of a database health check.
type HealthStatus struct {
	Healthy   bool          `json:"healthy"`
	Latency   time.Duration `json:"latency"`
	TotalConn int32         `json:"total_conns"`
	IdleConn  int32         `json:"idle_conns"`
	Error     string        `json:"error,omitempty"`
}

// CheckHealth pings the database and reports pool statistics.
func CheckHealth(ctx context.Context, pool *pgxpool.Pool) HealthStatus {
	if pool == nil {
		return HealthStatus{Error: "pool is nil"}
	}

	start := time.Now()
	err := pool.Ping(ctx)
	latency := time.Since(start)

	stats := pool.Stat()
	status := HealthStatus{
		Healthy:   err == nil,
		Latency:   latency,
		TotalConn: stats.TotalConns(),
		IdleConn:  stats.IdleConns(),
	}
	if err != nil {
		status.Error = fmt.Sprintf("ping failed: %v", err)
	}
	return status
}

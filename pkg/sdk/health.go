package dlfindex

import (
	"context"
	"time"

	healthuc "github.com/kailas-cloud/dlfindex/internal/usecase/health"
)

// Health components.
const (
	ComponentSearchEngine = healthuc.ComponentSearchEngine
	ComponentStorage      = healthuc.ComponentStorage
)

// HealthStatus is the aggregated state of the search engine and the relational store.
// Status is "ok", "degraded" when one store fails, or "error" when both fail.
type HealthStatus struct {
	Status string
	Checks map[string]string
}

// Healthy reports whether every component answered.
func (h HealthStatus) Healthy() bool { return h.Status == string(healthuc.Healthy) }

// Health pings both stores.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	report := c.healthSvc.Check(ctx)

	h := HealthStatus{Status: string(report.Status), Checks: make(map[string]string, len(report.Checks))}
	for k, v := range report.Checks {
		h.Checks[k] = string(v)
	}
	var err error
	if !h.Healthy() {
		err = errUnhealthy
	}
	c.obs.observe("health", start, err)
	return h
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

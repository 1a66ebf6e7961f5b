package usecase

import (
	"context"
	"sort"
	"time"
)

const ServiceName = "internview"

// HealthCheck probes one dependency. A nil error means healthy.
type HealthCheck func(ctx context.Context) error

type HealthStatus struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
}

type healthUsecase struct {
	version string
	checks  map[string]HealthCheck
}

func NewHealthUsecase(version string, checks map[string]HealthCheck) HealthUsecase {
	return &healthUsecase{version: version, checks: checks}
}

func (u *healthUsecase) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{Status: "ok", Service: ServiceName, Version: u.version}
	if len(u.checks) == 0 {
		return status
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(u.checks))
	for name := range u.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status.Checks = make(map[string]string, len(names))
	for _, name := range names {
		if err := u.checks[name](ctx); err != nil {
			status.Checks[name] = "down"
			status.Status = "degraded"
			continue
		}
		status.Checks[name] = "up"
	}
	return status
}

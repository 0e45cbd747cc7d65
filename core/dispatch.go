package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
	"github.com/BrettEastman/sway-leader-dashboard/schema"
)

// Dispatcher routes metric calls to the provider for a selected backend.
// The default backend applies when the caller passes an empty selector.
type Dispatcher struct {
	providers  map[schema.DataBackend]contract.MetricsProvider
	defBackend schema.DataBackend
}

// NewDispatcher registers providers under their own Backend() keys. The
// default must be among them.
func NewDispatcher(defBackend schema.DataBackend, providers ...contract.MetricsProvider) (*Dispatcher, error) {
	d := &Dispatcher{
		providers:  make(map[schema.DataBackend]contract.MetricsProvider, len(providers)),
		defBackend: defBackend,
	}
	for _, p := range providers {
		d.providers[p.Backend()] = p
	}
	if _, ok := d.providers[defBackend]; !ok {
		return nil, fmt.Errorf("no provider registered for default backend %s", defBackend)
	}
	return d, nil
}

// provider resolves the provider for a backend selector, falling back to
// the default when the selector is empty.
func (d *Dispatcher) provider(backend schema.DataBackend) (contract.MetricsProvider, error) {
	if backend == "" {
		backend = d.defBackend
	}
	p, ok := d.providers[backend]
	if !ok {
		return nil, fmt.Errorf("no provider registered for backend %s", backend)
	}
	return p, nil
}

// SwayScore dispatches the sway score metric.
func (d *Dispatcher) SwayScore(ctx context.Context, backend schema.DataBackend, groupID string) (schema.SwayScoreResult, error) {
	p, err := d.provider(backend)
	if err != nil {
		return schema.SwayScoreResult{}, err
	}
	return p.SwayScore(ctx, groupID)
}

// ElectoralInfluence dispatches the electoral influence metric.
func (d *Dispatcher) ElectoralInfluence(ctx context.Context, backend schema.DataBackend, groupID string) (schema.ElectoralInfluenceResult, error) {
	p, err := d.provider(backend)
	if err != nil {
		return schema.ElectoralInfluenceResult{}, err
	}
	return p.ElectoralInfluence(ctx, groupID)
}

// GrowthOverTime dispatches the growth metric.
func (d *Dispatcher) GrowthOverTime(ctx context.Context, backend schema.DataBackend, groupID string) (schema.GrowthOverTimeResult, error) {
	p, err := d.provider(backend)
	if err != nil {
		return schema.GrowthOverTimeResult{}, err
	}
	return p.GrowthOverTime(ctx, groupID)
}

// NetworkReach dispatches the network reach metric.
func (d *Dispatcher) NetworkReach(ctx context.Context, backend schema.DataBackend, groupID string) (schema.NetworkReachResult, error) {
	p, err := d.provider(backend)
	if err != nil {
		return schema.NetworkReachResult{}, err
	}
	return p.NetworkReach(ctx, groupID)
}

// GroupsWithSupporters dispatches the group listing. A provider that does
// not implement listing returns contract.ErrUnsupported, in which case the
// dispatcher retries against the default provider.
func (d *Dispatcher) GroupsWithSupporters(ctx context.Context, backend schema.DataBackend) ([]schema.GroupSummary, error) {
	p, err := d.provider(backend)
	if err != nil {
		return nil, err
	}
	groups, err := p.GroupsWithSupporters(ctx)
	if errors.Is(err, contract.ErrUnsupported) && p.Backend() != d.defBackend {
		fallback, fbErr := d.provider(d.defBackend)
		if fbErr != nil {
			return nil, err
		}
		return fallback.GroupsWithSupporters(ctx)
	}
	return groups, err
}

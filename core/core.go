package core

import (
	"context"
	"sync"
	"time"

	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
	"github.com/BrettEastman/sway-leader-dashboard/internal/outwriter"
	"github.com/BrettEastman/sway-leader-dashboard/schema"
)

// ExecuteSwayScore computes and prints the sway score for one group.
// It serves as the main entry point for the 'score' command.
func ExecuteSwayScore(ctx context.Context, cfg *contract.Config, disp *Dispatcher, groupID string) error {
	start := time.Now()
	result, err := disp.SwayScore(ctx, cfg.Backend, groupID)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintSwayScore(result, groupID, cfg, duration)
}

// ExecuteElectoralInfluence computes and prints the electoral influence
// breakdown for one group. It serves as the main entry point for the
// 'influence' command.
func ExecuteElectoralInfluence(ctx context.Context, cfg *contract.Config, disp *Dispatcher, groupID string) error {
	start := time.Now()
	result, err := disp.ElectoralInfluence(ctx, cfg.Backend, groupID)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintElectoralInfluence(result, groupID, cfg, duration)
}

// ExecuteGrowthOverTime computes and prints the cumulative growth series
// for one group. It serves as the main entry point for the 'growth' command.
func ExecuteGrowthOverTime(ctx context.Context, cfg *contract.Config, disp *Dispatcher, groupID string) error {
	start := time.Now()
	result, err := disp.GrowthOverTime(ctx, cfg.Backend, groupID)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintGrowthOverTime(result, groupID, cfg, duration)
}

// ExecuteNetworkReach computes and prints the network reach for one group.
// It serves as the main entry point for the 'network' command.
func ExecuteNetworkReach(ctx context.Context, cfg *contract.Config, disp *Dispatcher, groupID string) error {
	start := time.Now()
	result, err := disp.NetworkReach(ctx, cfg.Backend, groupID)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintNetworkReach(result, groupID, cfg, duration)
}

// ExecuteDashboard computes all four metrics concurrently and prints the
// combined dashboard. It serves as the main entry point for the 'dashboard'
// command.
func ExecuteDashboard(ctx context.Context, cfg *contract.Config, disp *Dispatcher, groupID string) error {
	start := time.Now()
	result, err := ComputeDashboard(ctx, cfg.Backend, disp, groupID)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintDashboard(result, cfg, duration)
}

// ComputeDashboard fans the four metric calls out concurrently and bundles
// their results. The metrics are independent reads against the same
// snapshot, so the fan-out is safe; the first cancellation error wins.
func ComputeDashboard(ctx context.Context, backend schema.DataBackend, disp *Dispatcher, groupID string) (*schema.DashboardResult, error) {
	result := &schema.DashboardResult{GroupID: groupID}
	errs := make([]error, 4)

	var wg sync.WaitGroup
	wg.Go(func() {
		result.SwayScore, errs[0] = disp.SwayScore(ctx, backend, groupID)
	})
	wg.Go(func() {
		result.ElectoralInfluence, errs[1] = disp.ElectoralInfluence(ctx, backend, groupID)
	})
	wg.Go(func() {
		result.GrowthOverTime, errs[2] = disp.GrowthOverTime(ctx, backend, groupID)
	})
	wg.Go(func() {
		result.NetworkReach, errs[3] = disp.NetworkReach(ctx, backend, groupID)
	})
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ExecuteGroups lists viewpoint groups with supporters. It serves as the
// main entry point for the 'groups' command.
func ExecuteGroups(ctx context.Context, cfg *contract.Config, disp *Dispatcher) error {
	start := time.Now()
	groups, err := disp.GroupsWithSupporters(ctx, cfg.Backend)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintGroups(groups, cfg, duration)
}

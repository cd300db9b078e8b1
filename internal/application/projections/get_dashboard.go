package projections

import (
	"context"

	donationStore "bloodbank/internal/adapters/storage/donation"
	requestStore "bloodbank/internal/adapters/storage/request"
)

// recentLimit bounds the recent-activity lists on the dashboard.
const recentLimit = 5

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	DonorStore     DonorCountStore
	RecipientStore RecipientCountStore
	DonationStore  DonationReadStore
	RequestStore   RequestReadStore
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	TotalDonors     int                 `json:"total_donors"`
	TotalRecipients int                 `json:"total_recipients"`
	TotalDonations  int                 `json:"total_donations"`
	PendingRequests int                 `json:"pending_requests"`
	RecentDonations []donationStore.Row `json:"recent_donations"`
	RecentRequests  []requestStore.Row  `json:"recent_requests"`
	Stock           []StockLevel        `json:"stock"`
}

// QueryGetDashboard aggregates the landing-page numbers. Each section is
// best-effort: a failing count leaves its field at zero rather than taking
// the whole dashboard down.
func QueryGetDashboard(ctx context.Context, deps GetDashboardDeps) (DashboardResult, error) {
	var result DashboardResult

	if n, err := deps.DonorStore.Count(ctx); err == nil {
		result.TotalDonors = n
	}
	if n, err := deps.RecipientStore.Count(ctx); err == nil {
		result.TotalRecipients = n
	}
	if n, err := deps.DonationStore.Count(ctx); err == nil {
		result.TotalDonations = n
	}
	if n, err := deps.RequestStore.CountPending(ctx); err == nil {
		result.PendingRequests = n
	}
	if rows, err := deps.DonationStore.Recent(ctx, recentLimit); err == nil {
		result.RecentDonations = rows
	}
	if rows, err := deps.RequestStore.Recent(ctx, recentLimit); err == nil {
		result.RecentRequests = rows
	}
	if stock, err := QueryGetBloodStock(ctx, GetBloodStockDeps{
		DonationStore: deps.DonationStore,
		RequestStore:  deps.RequestStore,
	}); err == nil {
		result.Stock = stock
	}

	return result, nil
}

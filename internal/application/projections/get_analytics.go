package projections

import (
	"context"

	donationStore "bloodbank/internal/adapters/storage/donation"
	donorStore "bloodbank/internal/adapters/storage/donor"
	hospitalStore "bloodbank/internal/adapters/storage/hospital"
)

// monthsOfHistory bounds the monthly donation trend.
const monthsOfHistory = 12

// AgeBucket is one bar of an age histogram.
type AgeBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// GetAnalyticsDeps holds dependencies for the analytics projection.
type GetAnalyticsDeps struct {
	DonorStore     DonorCountStore
	RecipientStore RecipientCountStore
	DonationStore  DonationReadStore
	RequestStore   RequestReadStore
	HospitalStore  HospitalActivityStore
}

// AnalyticsResult carries the output of the analytics projection.
type AnalyticsResult struct {
	DonorsByBloodGroup []donorStore.GroupCount    `json:"donors_by_blood_group"`
	MonthlyDonations   []donationStore.MonthCount `json:"monthly_donations"`
	HospitalActivity   []hospitalStore.Activity   `json:"hospital_activity"`
	DonorAges          []AgeBucket                `json:"donor_ages"`
	RecipientAges      []AgeBucket                `json:"recipient_ages"`
	Stock              []StockLevel               `json:"stock"`
}

// ageBuckets groups ages into decade bands for charting.
func ageBuckets(ages []int) []AgeBucket {
	labels := []string{"0-17", "18-29", "30-44", "45-59", "60+"}
	counts := make([]int, len(labels))
	for _, age := range ages {
		switch {
		case age < 18:
			counts[0]++
		case age < 30:
			counts[1]++
		case age < 45:
			counts[2]++
		case age < 60:
			counts[3]++
		default:
			counts[4]++
		}
	}
	out := make([]AgeBucket, len(labels))
	for i, label := range labels {
		out[i] = AgeBucket{Label: label, Count: counts[i]}
	}
	return out
}

// QueryGetAnalytics aggregates the reporting-page charts. Sections are
// best-effort like the dashboard.
func QueryGetAnalytics(ctx context.Context, deps GetAnalyticsDeps) (AnalyticsResult, error) {
	var result AnalyticsResult

	if groups, err := deps.DonorStore.CountByBloodGroup(ctx); err == nil {
		result.DonorsByBloodGroup = groups
	}
	if months, err := deps.DonationStore.MonthlyCounts(ctx, monthsOfHistory); err == nil {
		result.MonthlyDonations = months
	}
	if activity, err := deps.HospitalStore.ListActivity(ctx); err == nil {
		result.HospitalActivity = activity
	}
	if ages, err := deps.DonorStore.ListAges(ctx); err == nil {
		result.DonorAges = ageBuckets(ages)
	}
	if ages, err := deps.RecipientStore.ListAges(ctx); err == nil {
		result.RecipientAges = ageBuckets(ages)
	}
	if stock, err := QueryGetBloodStock(ctx, GetBloodStockDeps{
		DonationStore: deps.DonationStore,
		RequestStore:  deps.RequestStore,
	}); err == nil {
		result.Stock = stock
	}

	return result, nil
}

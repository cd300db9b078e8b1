package projections

import (
	"context"
	"testing"

	donationStore "bloodbank/internal/adapters/storage/donation"
	donorStore "bloodbank/internal/adapters/storage/donor"
	hospitalStore "bloodbank/internal/adapters/storage/hospital"
)

// mockDonorReads implements DonorCountStore for testing.
type mockDonorReads struct {
	count   int
	byGroup []donorStore.GroupCount
	ages    []int
}

func (m *mockDonorReads) Count(context.Context) (int, error) { return m.count, nil }

func (m *mockDonorReads) CountByBloodGroup(context.Context) ([]donorStore.GroupCount, error) {
	return m.byGroup, nil
}

func (m *mockDonorReads) ListAges(context.Context) ([]int, error) { return m.ages, nil }

// mockRecipientReads implements RecipientCountStore for testing.
type mockRecipientReads struct {
	count int
	ages  []int
}

func (m *mockRecipientReads) Count(context.Context) (int, error)      { return m.count, nil }
func (m *mockRecipientReads) ListAges(context.Context) ([]int, error) { return m.ages, nil }

// mockHospitalActivity implements HospitalActivityStore for testing.
type mockHospitalActivity struct {
	activity []hospitalStore.Activity
}

func (m *mockHospitalActivity) ListActivity(context.Context) ([]hospitalStore.Activity, error) {
	return m.activity, nil
}

// TestQueryGetAnalytics tests the reporting aggregation.
func TestQueryGetAnalytics(t *testing.T) {
	deps := GetAnalyticsDeps{
		DonorStore: &mockDonorReads{
			byGroup: []donorStore.GroupCount{{BloodGroup: "O+", Count: 5}},
			ages:    []int{22, 35, 61},
		},
		RecipientStore: &mockRecipientReads{ages: []int{8, 40}},
		DonationStore: &mockDonationReads{
			months: []donationStore.MonthCount{{Month: "2026-07", Count: 9}},
		},
		RequestStore:  &mockRequestReads{},
		HospitalStore: &mockHospitalActivity{activity: []hospitalStore.Activity{{Name: "City General", Donations: 9}}},
	}

	result, err := QueryGetAnalytics(context.Background(), deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.DonorsByBloodGroup) != 1 || result.DonorsByBloodGroup[0].Count != 5 {
		t.Errorf("unexpected donor groups: %+v", result.DonorsByBloodGroup)
	}
	if len(result.MonthlyDonations) != 1 || result.MonthlyDonations[0].Month != "2026-07" {
		t.Errorf("unexpected monthly trend: %+v", result.MonthlyDonations)
	}
	if len(result.HospitalActivity) != 1 {
		t.Errorf("unexpected hospital activity: %+v", result.HospitalActivity)
	}
	if len(result.DonorAges) != 5 || len(result.RecipientAges) != 5 {
		t.Error("expected five age buckets per histogram")
	}
}

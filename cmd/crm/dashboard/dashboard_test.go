package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomers(t *testing.T) {
	dashboard := NewDashboard()

	type expected struct {
		names []string
	}
	tests := map[string]struct {
		search string
		exp    expected
	}{
		"no search term": {
			search: "",
			exp: expected{
				names: []string{
					"John Smith",
					"Sarah Johnson",
					"Mike Chen",
					"Lisa Wilson",
					"David Brown",
					"Emily Davis",
				},
			},
		},
		"name match is case-insensitive": {
			search: "sarah",
			exp: expected{
				names: []string{"Sarah Johnson"},
			},
		},
		"email match": {
			search: "david.b@",
			exp: expected{
				names: []string{"David Brown"},
			},
		},
		"phone substring match": {
			search: "345-6789",
			exp: expected{
				names: []string{"Mike Chen"},
			},
		},
		"no match": {
			search: "zebra",
			exp: expected{
				names: []string{},
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			customers := dashboard.Customers(test.search)

			names := make([]string, 0, len(customers))
			for _, customer := range customers {
				names = append(names, customer.Name)
			}
			assert.Equal(t, test.exp.names, names)
		})
	}
}

func TestCustomerSummary(t *testing.T) {
	dashboard := NewDashboard()

	summary := dashboard.CustomerSummary()
	assert.Equal(t, 6, summary.Total)
	assert.Equal(t, 4, summary.Active)
	assert.Equal(t, 10, summary.TotalPolicies)
	assert.Equal(t, 10350, summary.TotalPremium)
}

func TestRenewalSummary(t *testing.T) {
	dashboard := NewDashboard()

	summary := dashboard.RenewalSummary()
	assert.Equal(t, 4, summary.Urgent)
	assert.Equal(t, 4430, summary.PremiumAtRisk)
	assert.Equal(t, 1, summary.Renewed)
	assert.Equal(t, 89, summary.RetentionRate)
}

func TestUrgentRenewals(t *testing.T) {
	dashboard := NewDashboard()

	urgent := dashboard.UrgentRenewals()
	require.Len(t, urgent, 4)
	for _, renewal := range urgent {
		assert.LessOrEqual(t, renewal.DaysLeft, urgentWindowDays)
	}
}

func TestAnalytics(t *testing.T) {
	dashboard := NewDashboard()

	analytics := dashboard.Analytics()
	assert.Equal(t, 372247, analytics.TotalRevenue)
	assert.Equal(t, 2847, analytics.ActivePolicies)
	assert.Len(t, analytics.MonthlyRevenue, 6)
	assert.Len(t, analytics.CustomerRetained, 5)
	assert.Len(t, analytics.PolicyTypes, 3)
	assert.Len(t, analytics.AgentPerformances, 4)
}

func TestScan(t *testing.T) {
	scanner := NewScanner(WithProcessingDelay(time.Millisecond))

	t.Run("no document", func(t *testing.T) {
		_, err := scanner.Scan(context.Background(), "")
		require.ErrorIs(t, err, ErrNoDocument)
	})

	t.Run("extraction", func(t *testing.T) {
		result, err := scanner.Scan(context.Background(), "policy.pdf")
		require.Nil(t, err)
		assert.Equal(t, 95, result.Confidence)
		assert.Equal(t, "AUTO-2024-12345", result.ExtractedData.PolicyNumber)
		assert.Equal(t, "Toyota", result.ExtractedData.VehicleDetails.Make)
	})

	t.Run("cancelled context", func(t *testing.T) {
		slow := NewScanner(WithProcessingDelay(time.Minute))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := slow.Scan(ctx, "policy.pdf")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestOverview(t *testing.T) {
	dashboard := NewDashboard()

	overview := dashboard.Overview()
	require.Len(t, overview.Stats, 4)
	assert.Equal(t, "Total Brokers", overview.Stats[0].Title)
	assert.Len(t, overview.RecentBrokers, 4)
	assert.Len(t, overview.SystemAlerts, 4)
}

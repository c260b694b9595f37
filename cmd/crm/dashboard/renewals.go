package dashboard

import "time"

// urgentWindowDays bounds the renewal window surfaced as urgent and counted
// toward premium at risk.
const urgentWindowDays = 30

type Renewal struct {
	ID              int       `json:"id"`
	Customer        string    `json:"customer"`
	Policy          string    `json:"policy"`
	Expires         time.Time `json:"expires"`
	Premium         int       `json:"premium"`
	Priority        string    `json:"priority"`
	Status          string    `json:"status"`
	DaysLeft        int       `json:"daysLeft"`
	ContactAttempts int       `json:"contactAttempts"`
	LastContact     string    `json:"lastContact,omitempty"`
	VehicleInfo     string    `json:"vehicleInfo"`
}

// IsUrgent indicates the renewal falls inside the urgent window.
func (r Renewal) IsUrgent() bool {
	return r.DaysLeft <= urgentWindowDays
}

type RenewalSummary struct {
	Urgent        int `json:"urgent"`
	PremiumAtRisk int `json:"premiumAtRisk"`
	Renewed       int `json:"renewed"`
	RetentionRate int `json:"retentionRate"`
}

const (
	renewalStatusRenewed = "renewed"

	// retentionRate is the last quarter's book retention figure.
	retentionRate = 89
)

// Renewals retrieves the renewal pipeline.
func (d Dashboard) Renewals() []Renewal {
	return d.renewals
}

// UrgentRenewals retrieves the renewals inside the urgent window.
func (d Dashboard) UrgentRenewals() []Renewal {
	urgent := make([]Renewal, 0, len(d.renewals))
	for _, renewal := range d.renewals {
		if renewal.IsUrgent() {
			urgent = append(urgent, renewal)
		}
	}
	return urgent
}

// RenewalSummary aggregates the renewal pipeline into headline stats. Premium
// at risk is the premium sum of renewals inside the urgent window.
func (d Dashboard) RenewalSummary() RenewalSummary {
	summary := RenewalSummary{RetentionRate: retentionRate}
	for _, renewal := range d.renewals {
		if renewal.IsUrgent() {
			summary.Urgent++
			summary.PremiumAtRisk += renewal.Premium
		}
		if renewal.Status == renewalStatusRenewed {
			summary.Renewed++
		}
	}
	return summary
}

func seedRenewals() []Renewal {
	return []Renewal{
		{
			ID:              1,
			Customer:        "John Smith",
			Policy:          "AUTO-2024-001",
			Expires:         time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
			Premium:         1250,
			Priority:        "high",
			Status:          "pending",
			DaysLeft:        17,
			ContactAttempts: 0,
			VehicleInfo:     "2022 Toyota Camry",
		},
		{
			ID:              2,
			Customer:        "Sarah Johnson",
			Policy:          "AUTO-2024-002",
			Expires:         time.Date(2024, time.June, 18, 0, 0, 0, 0, time.UTC),
			Premium:         980,
			Priority:        "medium",
			Status:          "contacted",
			DaysLeft:        20,
			ContactAttempts: 2,
			LastContact:     "2024-05-25",
			VehicleInfo:     "2021 Honda Civic",
		},
		{
			ID:              3,
			Customer:        "Mike Chen",
			Policy:          "AUTO-2024-003",
			Expires:         time.Date(2024, time.June, 22, 0, 0, 0, 0, time.UTC),
			Premium:         1450,
			Priority:        "high",
			Status:          "pending",
			DaysLeft:        24,
			ContactAttempts: 1,
			LastContact:     "2024-05-20",
			VehicleInfo:     "2023 BMW X5",
		},
		{
			ID:              4,
			Customer:        "Lisa Wilson",
			Policy:          "AUTO-2024-004",
			Expires:         time.Date(2024, time.June, 25, 0, 0, 0, 0, time.UTC),
			Premium:         750,
			Priority:        "low",
			Status:          "renewed",
			DaysLeft:        27,
			ContactAttempts: 1,
			LastContact:     "2024-05-22",
			VehicleInfo:     "2020 Ford Focus",
		},
		{
			ID:              5,
			Customer:        "David Brown",
			Policy:          "AUTO-2024-005",
			Expires:         time.Date(2024, time.July, 2, 0, 0, 0, 0, time.UTC),
			Premium:         1850,
			Priority:        "high",
			Status:          "pending",
			DaysLeft:        34,
			ContactAttempts: 0,
			VehicleInfo:     "2023 Mercedes C-Class",
		},
		{
			ID:              6,
			Customer:        "Emily Davis",
			Policy:          "AUTO-2024-006",
			Expires:         time.Date(2024, time.July, 8, 0, 0, 0, 0, time.UTC),
			Premium:         1120,
			Priority:        "medium",
			Status:          "declined",
			DaysLeft:        40,
			ContactAttempts: 3,
			LastContact:     "2024-05-18",
			VehicleInfo:     "2021 Nissan Altima",
		},
	}
}

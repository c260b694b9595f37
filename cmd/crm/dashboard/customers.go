// Package dashboard serves the CRM's read-side datasets: the customer book,
// the renewal pipeline, analytics series, document scanning, and the admin
// platform overview. Datasets are in-memory seeds; the product's data entry
// flows have not shipped yet.
package dashboard

import "strings"

type Customer struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Policies     int    `json:"policies"`
	TotalPremium int    `json:"totalPremium"`
	LastContact  string `json:"lastContact"`
	Status       string `json:"status"`
	Avatar       string `json:"avatar"`
}

type CustomerSummary struct {
	Total         int `json:"total"`
	Active        int `json:"active"`
	TotalPolicies int `json:"totalPolicies"`
	TotalPremium  int `json:"totalPremium"`
}

const statusActive = "active"

func NewDashboard() *Dashboard {
	return &Dashboard{
		customers: seedCustomers(),
		renewals:  seedRenewals(),
	}
}

// Dashboard owns the CRM read-side datasets.
type Dashboard struct {
	customers []Customer
	renewals  []Renewal
}

// Customers retrieves the customer book, optionally narrowed by a search
// term. Name and email match case-insensitively; phone matches on substring.
func (d Dashboard) Customers(search string) []Customer {
	if search == "" {
		return d.customers
	}

	term := strings.ToLower(search)
	matched := make([]Customer, 0, len(d.customers))
	for _, customer := range d.customers {
		switch {
		case strings.Contains(strings.ToLower(customer.Name), term):
		case strings.Contains(strings.ToLower(customer.Email), term):
		case strings.Contains(customer.Phone, search):
		default:
			continue
		}
		matched = append(matched, customer)
	}
	return matched
}

// CustomerSummary aggregates the customer book into headline stats.
func (d Dashboard) CustomerSummary() CustomerSummary {
	summary := CustomerSummary{Total: len(d.customers)}
	for _, customer := range d.customers {
		if customer.Status == statusActive {
			summary.Active++
		}
		summary.TotalPolicies += customer.Policies
		summary.TotalPremium += customer.TotalPremium
	}
	return summary
}

func seedCustomers() []Customer {
	return []Customer{
		{
			ID:           1,
			Name:         "John Smith",
			Email:        "john.smith@email.com",
			Phone:        "(555) 123-4567",
			Address:      "123 Main St, Springfield, IL 62701",
			Policies:     2,
			TotalPremium: 2450,
			LastContact:  "2024-05-28",
			Status:       "active",
			Avatar:       "JS",
		},
		{
			ID:           2,
			Name:         "Sarah Johnson",
			Email:        "sarah.j@email.com",
			Phone:        "(555) 234-5678",
			Address:      "456 Oak Ave, Chicago, IL 60601",
			Policies:     1,
			TotalPremium: 980,
			LastContact:  "2024-05-25",
			Status:       "active",
			Avatar:       "SJ",
		},
		{
			ID:           3,
			Name:         "Mike Chen",
			Email:        "mike.chen@email.com",
			Phone:        "(555) 345-6789",
			Address:      "789 Pine Rd, Naperville, IL 60540",
			Policies:     3,
			TotalPremium: 3200,
			LastContact:  "2024-05-20",
			Status:       "pending",
			Avatar:       "MC",
		},
		{
			ID:           4,
			Name:         "Lisa Wilson",
			Email:        "lisa.wilson@email.com",
			Phone:        "(555) 456-7890",
			Address:      "321 Elm St, Peoria, IL 61601",
			Policies:     1,
			TotalPremium: 750,
			LastContact:  "2024-05-15",
			Status:       "inactive",
			Avatar:       "LW",
		},
		{
			ID:           5,
			Name:         "David Brown",
			Email:        "david.b@email.com",
			Phone:        "(555) 567-8901",
			Address:      "654 Maple Dr, Rockford, IL 61101",
			Policies:     2,
			TotalPremium: 1850,
			LastContact:  "2024-05-22",
			Status:       "active",
			Avatar:       "DB",
		},
		{
			ID:           6,
			Name:         "Emily Davis",
			Email:        "emily.davis@email.com",
			Phone:        "(555) 678-9012",
			Address:      "987 Cedar Ln, Aurora, IL 60502",
			Policies:     1,
			TotalPremium: 1120,
			LastContact:  "2024-05-18",
			Status:       "active",
			Avatar:       "ED",
		},
	}
}

package dashboard

import (
	"context"
	"errors"
	"time"
)

// ErrNoDocument indicates a scan was requested without a document reference.
var ErrNoDocument = errors.New("no document to scan")

const defaultProcessingDelay = 3 * time.Second

// NewScanner creates a Scanner instance.
func NewScanner(options ...ScannerOption) *Scanner {
	s := &Scanner{
		delay: defaultProcessingDelay,
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// ScannerOption is a function that mutates a Scanner instance. This is
// typically used with NewScanner.
type ScannerOption func(*Scanner)

// WithProcessingDelay creates a ScannerOption that configures how long a scan
// simulates document processing.
func WithProcessingDelay(delay time.Duration) ScannerOption {
	return func(s *Scanner) { s.delay = delay }
}

// Scanner simulates policy document OCR. Real extraction has not shipped; the
// scan returns a canned result after a processing pause.
type Scanner struct {
	delay time.Duration
}

// Scan extracts policy information from the referenced document.
func (s Scanner) Scan(ctx context.Context, document string) (*ScanResult, error) {
	if document == "" {
		return nil, ErrNoDocument
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	result := canned
	return &result, nil
}

type ScanResult struct {
	Confidence    int        `json:"confidence"`
	ExtractedData Extraction `json:"extractedData"`
}

type Extraction struct {
	PolicyNumber     string         `json:"policyNumber"`
	PolicyHolderName string         `json:"policyHolderName"`
	InsuranceCompany string         `json:"insuranceCompany"`
	PolicyType       string         `json:"policyType"`
	PremiumAmount    string         `json:"premiumAmount"`
	PolicyStartDate  string         `json:"policyStartDate"`
	PolicyEndDate    string         `json:"policyEndDate"`
	VehicleDetails   VehicleDetails `json:"vehicleDetails"`
	Coverage         Coverage       `json:"coverage"`
	AgentInfo        AgentInfo      `json:"agentInfo"`
}

type VehicleDetails struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         string `json:"year"`
	VIN          string `json:"vin"`
	Registration string `json:"registration"`
}

type Coverage struct {
	Liability     string `json:"liability"`
	Collision     string `json:"collision"`
	Comprehensive string `json:"comprehensive"`
}

type AgentInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

var canned = ScanResult{
	Confidence: 95,
	ExtractedData: Extraction{
		PolicyNumber:     "AUTO-2024-12345",
		PolicyHolderName: "John Michael Smith",
		InsuranceCompany: "SafeDrive Insurance Co.",
		PolicyType:       "Auto Insurance - Comprehensive",
		PremiumAmount:    "$1,250.00",
		PolicyStartDate:  "2024-01-15",
		PolicyEndDate:    "2025-01-15",
		VehicleDetails: VehicleDetails{
			Make:         "Toyota",
			Model:        "Camry",
			Year:         "2022",
			VIN:          "1234567890ABCDEFG",
			Registration: "ABC-1234",
		},
		Coverage: Coverage{
			Liability:     "$100,000",
			Collision:     "$50,000",
			Comprehensive: "$50,000",
		},
		AgentInfo: AgentInfo{
			Name:  "Sarah Johnson",
			Phone: "(555) 123-4567",
			Email: "sarah.j@safedrive.com",
		},
	},
}

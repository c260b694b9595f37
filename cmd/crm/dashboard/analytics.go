package dashboard

type MonthlyRevenue struct {
	Month    string `json:"month"`
	Revenue  int    `json:"revenue"`
	Policies int    `json:"policies"`
}

type RetentionMonth struct {
	Month    string `json:"month"`
	Retained int    `json:"retained"`
	New      int    `json:"new"`
	Lost     int    `json:"lost"`
}

type PolicyTypeShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type AgentPerformance struct {
	Name      string `json:"name"`
	Policies  int    `json:"policies"`
	Revenue   int    `json:"revenue"`
	Retention int    `json:"retention"`
}

type Analytics struct {
	TotalRevenue      int `json:"totalRevenue"`
	ActivePolicies    int `json:"activePolicies"`
	CustomerRetention int `json:"customerRetention"`
	AveragePolicy     int `json:"averagePolicyValue"`

	MonthlyRevenue    []MonthlyRevenue   `json:"monthlyRevenue"`
	CustomerRetained  []RetentionMonth   `json:"retentionSeries"`
	PolicyTypes       []PolicyTypeShare  `json:"policyTypes"`
	AgentPerformances []AgentPerformance `json:"agentPerformance"`
}

// Analytics retrieves the brokerage performance series and headline KPIs.
func (d Dashboard) Analytics() Analytics {
	const (
		totalRevenue   = 372247
		activePolicies = 2847
	)

	return Analytics{
		TotalRevenue:      totalRevenue,
		ActivePolicies:    activePolicies,
		CustomerRetention: retentionRate,
		AveragePolicy:     totalRevenue / activePolicies,
		MonthlyRevenue: []MonthlyRevenue{
			{Month: "Jan", Revenue: 65000, Policies: 45},
			{Month: "Feb", Revenue: 72000, Policies: 52},
			{Month: "Mar", Revenue: 68000, Policies: 48},
			{Month: "Apr", Revenue: 78000, Policies: 58},
			{Month: "May", Revenue: 89247, Policies: 67},
			{Month: "Jun", Revenue: 0, Policies: 0},
		},
		CustomerRetained: []RetentionMonth{
			{Month: "Jan", Retained: 92, New: 15, Lost: 8},
			{Month: "Feb", Retained: 88, New: 22, Lost: 12},
			{Month: "Mar", Retained: 95, New: 18, Lost: 5},
			{Month: "Apr", Retained: 87, New: 28, Lost: 13},
			{Month: "May", Retained: 91, New: 24, Lost: 9},
		},
		PolicyTypes: []PolicyTypeShare{
			{Name: "Comprehensive", Value: 45},
			{Name: "Third Party", Value: 30},
			{Name: "Third Party Fire & Theft", Value: 25},
		},
		AgentPerformances: []AgentPerformance{
			{Name: "John Doe", Policies: 67, Revenue: 89247, Retention: 91},
			{Name: "Sarah Smith", Policies: 54, Revenue: 72000, Retention: 88},
			{Name: "Mike Johnson", Policies: 48, Revenue: 65000, Retention: 92},
			{Name: "Lisa Wilson", Policies: 39, Revenue: 52000, Retention: 85},
		},
	}
}

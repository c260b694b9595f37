package dashboard

type Stat struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
}

type Broker struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Company  string `json:"company"`
	Status   string `json:"status"`
	JoinDate string `json:"joinDate"`
	Policies int    `json:"policies"`
}

type Alert struct {
	ID      int    `json:"id"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

type Overview struct {
	Stats         []Stat   `json:"stats"`
	RecentBrokers []Broker `json:"recentBrokers"`
	SystemAlerts  []Alert  `json:"systemAlerts"`
}

// Overview retrieves the platform-wide stats surfaced to admins.
func (d Dashboard) Overview() Overview {
	return Overview{
		Stats: []Stat{
			{Title: "Total Brokers", Value: "147", Change: "+12%"},
			{Title: "Active Policies", Value: "28,470", Change: "+18%"},
			{Title: "Monthly Revenue", Value: "₹45,67,890", Change: "+25%"},
			{Title: "System Health", Value: "99.9%", Change: "Excellent"},
		},
		RecentBrokers: []Broker{
			{ID: 1, Name: "Rajesh Kumar", Company: "Kumar Insurance Services", Status: "active", JoinDate: "15/05/2024", Policies: 234},
			{ID: 2, Name: "Priya Sharma", Company: "Sharma & Associates", Status: "pending", JoinDate: "12/05/2024", Policies: 0},
			{ID: 3, Name: "Amit Patel", Company: "Patel Insurance Agency", Status: "active", JoinDate: "10/05/2024", Policies: 156},
			{ID: 4, Name: "Sunita Reddy", Company: "Reddy Insurance Solutions", Status: "active", JoinDate: "08/05/2024", Policies: 89},
		},
		SystemAlerts: []Alert{
			{ID: 1, Type: "warning", Message: "Server maintenance scheduled for tonight at 2 AM", Time: "1 hour ago"},
			{ID: 2, Type: "info", Message: "New broker approval pending review", Time: "3 hours ago"},
			{ID: 3, Type: "success", Message: "Monthly backup completed successfully", Time: "6 hours ago"},
			{ID: 4, Type: "warning", Message: "High API usage detected for Mumbai region", Time: "1 day ago"},
		},
	}
}

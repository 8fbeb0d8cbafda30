package model

// Dataset is one bar series of a chart
type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// BarChart is a labelled set of bar series
type BarChart struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// DonutChart is the courses overview chart
type DonutChart struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// Dashboard is the chart-ready view of GET /api/user/{id}/dashboard
type Dashboard struct {
	Name                 string              `json:"name"`
	Greeting             string              `json:"greeting"`
	Email                string              `json:"email"`
	Degree               string              `json:"degree"`
	College              string              `json:"college"`
	ProfileImageURL      string              `json:"profileImageUrl,omitempty"`
	CompletionPercentage int                 `json:"completionPercentage"`
	Courses              DonutChart          `json:"courses"`
	Performance          map[string]BarChart `json:"performance"` // "monthly", "weekly"
}

// DashboardResponse wraps the dashboard view
type DashboardResponse struct {
	Success bool       `json:"success"`
	Data    *Dashboard `json:"data"`
}

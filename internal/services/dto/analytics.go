package dto

// DashboardStats is the admin landing page counter block.
type DashboardStats struct {
	TotalApplications int64 `json:"totalApplications"`
	TotalPending      int64 `json:"totalPending"`
	TotalApproved     int64 `json:"totalApproved"`
	TotalRejected     int64 `json:"totalRejected"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type AreaCount struct {
	Area  string `json:"area"`
	Count int64  `json:"count"`
}

// StatusDistribution is a fixed three-key shape spanning all records.
type StatusDistribution struct {
	Pending  int64 `json:"pending"`
	Verified int64 `json:"verified"`
	Rejected int64 `json:"rejected"`
}

// AnalyticsData combines counters, the rounded average wage and top-5
// category/area breakdowns.
type AnalyticsData struct {
	TotalProfessionals int64           `json:"totalProfessionals"`
	Verified           int64           `json:"verified"`
	Pending            int64           `json:"pending"`
	Rejected           int64           `json:"rejected"`
	AverageHourlyWage  int64           `json:"averageHourlyWage"`
	TopCategories      []CategoryCount `json:"topCategories"`
	TopAreas           []AreaCount     `json:"topAreas"`
}

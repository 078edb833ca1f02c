package dto

// MetricsSnapshot holds the three dashboard counts computed from one refresh.
type MetricsSnapshot struct {
	Pending       int `json:"pending"`
	ApprovedToday int `json:"approved_today"`
	Alerts        int `json:"alerts"`
}

// MetricsDisplay is what the metric cards show. When the refresh failed every
// slot carries the unavailable sentinel and Available is false.
type MetricsDisplay struct {
	Pending       string `json:"pending"`
	ApprovedToday string `json:"approved_today"`
	Alerts        string `json:"alerts"`
	Available     bool   `json:"available"`
}

// MetricsResponse is the JSON body served by the metrics API.
type MetricsResponse struct {
	Snapshot  *MetricsSnapshot `json:"snapshot"`
	Display   MetricsDisplay   `json:"display"`
	Refreshed string           `json:"refreshed_at"`
}

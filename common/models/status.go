package models

import "time"

// CatalogStatus summarizes the committed catalog.
type CatalogStatus struct {
	TotalCountries  int64      `json:"total_countries"`
	LastRefreshedAt *time.Time `json:"last_refreshed_at"`
}

// RefreshResult is returned by a completed refresh run.
type RefreshResult struct {
	RunID           string    `json:"-"`
	RefreshedCount  int       `json:"refreshed_count"`
	Created         int       `json:"-"`
	Updated         int       `json:"-"`
	Skipped         int       `json:"-"`
	Failed          int       `json:"-"`
	LastRefreshedAt time.Time `json:"last_refreshed_at"`
}

// RefreshResponse is the body of a successful refresh request.
type RefreshResponse struct {
	Message         string    `json:"message"`
	RefreshedCount  int       `json:"refreshed_count"`
	LastRefreshedAt time.Time `json:"last_refreshed_at"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

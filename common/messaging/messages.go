package messaging

import "time"

// CountriesRefreshedMessage is published on countries.refreshed after a refresh run
type CountriesRefreshedMessage struct {
	RunID           string    `json:"run_id"`
	RefreshedCount  int       `json:"refreshed_count"`
	Created         int       `json:"created"`
	Updated         int       `json:"updated"`
	LastRefreshedAt time.Time `json:"last_refreshed_at"`
}

// CountryDeletedMessage is published on countries.deleted
type CountryDeletedMessage struct {
	Name      string    `json:"name"`
	DeletedAt time.Time `json:"deleted_at"`
}

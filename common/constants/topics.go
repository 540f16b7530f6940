package constants

const (
	// CountriesRefreshedSubject is published after every successful refresh run.
	CountriesRefreshedSubject = "countries.refreshed"
	// CountriesDeletedSubject is published when a country is removed from the catalog.
	CountriesDeletedSubject = "countries.deleted"
	// CountriesSubjects is the wildcard bound to the JetStream stream.
	CountriesSubjects = "countries.>"
)

package common

const (
	// AppName is the name of the application
	AppName = "country-currency-service"

	// RefreshLockKey guards a refresh run across service instances
	RefreshLockKey = AppName + ":refresh-lock"
)

// SortOrder selects how the country list is ordered
type SortOrder string

const (
	// SortNone keeps storage order
	SortNone SortOrder = ""
	// SortGDPDesc orders by estimated GDP, largest first
	SortGDPDesc SortOrder = "gdp_desc"
	// SortGDPAsc orders by estimated GDP, smallest first
	SortGDPAsc SortOrder = "gdp_asc"
)

// ParseSortOrder maps a query value to a SortOrder. Unknown values keep storage order.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortGDPDesc, SortGDPAsc:
		return SortOrder(s)
	default:
		return SortNone
	}
}

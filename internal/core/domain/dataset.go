package domain

import "strings"

// Dataset is a catalog entry on the open-data portal.
type Dataset struct {
	// ID is the portal identifier used to fetch the dataset detail.
	ID string

	// Title is the human-readable dataset title.
	Title string
}

// Resource is a downloadable file attached to a dataset.
type Resource struct {
	ID     string
	Title  string
	Format string
	URL    string

	// FileSize is the advertised size in bytes, zero when unknown.
	FileSize int64
}

// DatasetDetail is a dataset together with its resources in portal order.
type DatasetDetail struct {
	Dataset
	Resources []Resource
}

// Matches reports whether the resource title contains needle and the
// format equals format exactly.
func (r Resource) Matches(needle, format string) bool {
	return strings.Contains(r.Title, needle) && r.Format == format
}

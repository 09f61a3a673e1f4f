package dto

// SortLink is the header link of one overview column.
type SortLink struct {
	Column string `json:"column"`
	URL    string `json:"url"`
	Icon   string `json:"icon"`
}

// OverviewFilters echoes the active filter values.
type OverviewFilters struct {
	From           string `json:"FraDato,omitempty"`
	To             string `json:"TilDato,omitempty"`
	Department     string `json:"ValgtAfdeling,omitempty"`
	User           string `json:"ValgtBruger,omitempty"`
	SortBy         string `json:"SortBy"`
	SortDescending bool   `json:"SortDescending"`
}

// OverviewPage is the cross-user overview.
type OverviewPage struct {
	Filters     OverviewFilters `json:"filters"`
	Entries     []EntryResponse `json:"entries"`
	Totals      TotalsResponse  `json:"totals"`
	Departments []string        `json:"departments"`
	Users       []string        `json:"users"`
	SortLinks   []SortLink      `json:"sort_links"`
	ExportURL   string          `json:"export_url"`
}

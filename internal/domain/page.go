package domain

// PagesInfo is the payload of a category's pages.json.
type PagesInfo struct {
	Count     int  `json:"count"`
	Pages     *int `json:"pages"`
	ImdbCount int  `json:"imdb_count,omitempty"`
}

type PageDescriptor struct {
	Category   Category `json:"category"`
	PageNumber int      `json:"page_number"`
	TotalPages int      `json:"total_pages"`
}

// Exhausted reports whether every page has been consumed.
func (d PageDescriptor) Exhausted() bool {
	return d.PageNumber > d.TotalPages
}

type CataloguePage struct {
	PageDescriptor
	Items []ItemSummary `json:"items"`
}

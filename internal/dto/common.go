package dto

// Pagination carries parsed skip/limit values supplied by the request layer.
type Pagination struct {
	Skip  int
	Limit int
}

// PageInfo describes the page of a list response.
type PageInfo struct {
	MatchingCount int `json:"matchingCount"`
	TotalCount    int `json:"totalCount"`
	PagesCount    int `json:"pagesCount,omitempty"`
	CurrentPage   int `json:"currentPage,omitempty"`
}

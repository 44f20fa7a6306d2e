package models

// DefaultPageSize is the number of questions on a list page.
const DefaultPageSize = 10

// QuestionPage is one zero-indexed page of the question list,
// ordered by creation time descending.
type QuestionPage struct {
	Items      []*Question `json:"items"`
	Page       int         `json:"page"`
	Size       int         `json:"size"`
	TotalCount int64       `json:"total_count"`
}

// TotalPages returns the number of pages needed for TotalCount items.
func (p *QuestionPage) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalCount + int64(p.Size) - 1) / int64(p.Size))
}

// HasNext reports whether a page follows this one.
func (p *QuestionPage) HasNext() bool {
	return p.Page+1 < p.TotalPages()
}

// HasPrevious reports whether a page precedes this one.
func (p *QuestionPage) HasPrevious() bool {
	return p.Page > 0
}

package dto

import (
	"net/url"
	"strconv"

	"github.com/noah-isme/skillbridge-web/internal/models"
)

// Pagination drives the Previous/Next controls under a list.
type Pagination struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int

	// From and To are the 1-based bounds of the rows on this page.
	From int
	To   int

	base  string
	query url.Values
}

// NewPagination builds controls from the meta of a list response. page and
// limit are what was requested and are used when meta is absent.
func NewPagination(meta *models.Meta, page, limit int, base string, query url.Values) Pagination {
	p := Pagination{Page: page, Limit: limit, base: base, query: query}
	if meta != nil {
		p.Total = meta.Total
		p.TotalPages = meta.TotalPages
		if meta.Page > 0 {
			p.Page = meta.Page
		}
		if meta.Limit > 0 {
			p.Limit = meta.Limit
		}
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Total > 0 && p.Limit > 0 {
		p.From = (p.Page-1)*p.Limit + 1
		p.To = p.Page * p.Limit
		if p.To > p.Total {
			p.To = p.Total
		}
	}
	return p
}

// Visible reports whether controls are rendered at all.
func (p Pagination) Visible() bool { return p.TotalPages > 1 }

// PrevDisabled is true on the first page.
func (p Pagination) PrevDisabled() bool { return p.Page == 1 }

// NextDisabled is true on the last page.
func (p Pagination) NextDisabled() bool { return p.Page == p.TotalPages }

// PrevURL links to the previous page keeping the other query parameters.
func (p Pagination) PrevURL() string { return p.urlFor(p.Page - 1) }

// NextURL links to the next page keeping the other query parameters.
func (p Pagination) NextURL() string { return p.urlFor(p.Page + 1) }

func (p Pagination) urlFor(page int) string {
	q := url.Values{}
	for k, v := range p.query {
		q[k] = append([]string(nil), v...)
	}
	q.Set("page", strconv.Itoa(page))
	return p.base + "?" + q.Encode()
}

// Tab is one entry of a tab strip.
type Tab struct {
	Key    string
	Label  string
	URL    string
	Active bool
}

// PageParam parses a 1-based page number, defaulting to 1.
func PageParam(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

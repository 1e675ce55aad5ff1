// Package list implements the paginated-list controller: pagination
// state driven by the URL query, the role/page context that selects a
// data-source variant, and the load/delete cycle around them.
package list

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/elikia/elikia-client/internal/models"
)

// DefaultPageSize is the page size used when the query carries none.
const DefaultPageSize = 12

// Navigator is how the controller changes pagination position: it
// merges a query into the current location and re-triggers the query
// cycle. The URL stays the single source of truth; pagination state is
// never mutated directly by a navigation request.
type Navigator interface {
	Navigate(query url.Values)
}

// Paginator holds the pagination state of one list view.
type Paginator struct {
	nav         Navigator
	defaultSize int

	CurrentPage int
	PageSize    int
	TotalPages  int
	First       bool
	Last        bool

	// generation tags the latest issued load so a stale response
	// arriving after a rapid page change is ignored.
	generation uuid.UUID
}

// NewPaginator builds a paginator navigating through nav. A
// non-positive defaultSize falls back to DefaultPageSize.
func NewPaginator(nav Navigator, defaultSize int) *Paginator {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	return &Paginator{
		nav:         nav,
		defaultSize: defaultSize,
		PageSize:    defaultSize,
		First:       true,
	}
}

// SyncFromQuery reconciles page and size from the URL query. When the
// page parameter is absent it issues a single redirect that fills in
// the defaults and reports ok=false: no data load happens this cycle,
// the navigation re-triggers it with the parameter present. Values
// that fail to parse fall back to 0 and the default size.
func (p *Paginator) SyncFromQuery(q url.Values) (page, size int, ok bool) {
	if !q.Has("page") {
		p.nav.Navigate(url.Values{
			"page": {"0"},
			"size": {strconv.Itoa(p.defaultSize)},
		})
		return 0, 0, false
	}

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil {
		page = 0
	}
	size, err = strconv.Atoi(q.Get("size"))
	if err != nil || size <= 0 {
		size = p.defaultSize
	}

	p.CurrentPage = page
	p.PageSize = size
	return page, size, true
}

// BeginLoad marks a new load cycle and returns its tag.
func (p *Paginator) BeginLoad() uuid.UUID {
	p.generation = uuid.New()
	return p.generation
}

// ApplyPage updates the pagination metadata from a loaded page
// envelope. It reports false, leaving state untouched, when tag no
// longer matches the latest issued load.
func (p *Paginator) ApplyPage(tag uuid.UUID, totalPages int, first, last bool) bool {
	if tag != p.generation {
		return false
	}
	p.TotalPages = totalPages
	p.First = first
	p.Last = last
	return true
}

// Pages returns the navigable page index list [0, totalPages).
func (p *Paginator) Pages() []int {
	pages := make([]int, p.TotalPages)
	for i := range pages {
		pages[i] = i
	}
	return pages
}

// GoToPage navigates to page n. Out-of-range targets are a no-op:
// no navigation event is emitted.
func (p *Paginator) GoToPage(n int) {
	if n < 0 || n >= p.TotalPages {
		return
	}
	p.nav.Navigate(url.Values{
		"page": {strconv.Itoa(n)},
		"size": {strconv.Itoa(p.PageSize)},
	})
}

// PreviousPage navigates one page back unless already on the first.
func (p *Paginator) PreviousPage() {
	if p.First {
		return
	}
	p.GoToPage(p.CurrentPage - 1)
}

// NextPage navigates one page forward unless already on the last.
func (p *Paginator) NextPage() {
	if p.Last {
		return
	}
	p.GoToPage(p.CurrentPage + 1)
}

// IsActive reports whether n is the current page.
func (p *Paginator) IsActive(n int) bool {
	return n == p.CurrentPage
}

// Context captures the role and route facts that pick the data-source
// variant for a list view. It is computed once per view activation.
type Context struct {
	IsAdmin      bool
	IsMember     bool
	IsAdminPage  bool
	IsMemberPage bool
}

// NewContext derives the context from the cached role and the current
// view path.
func NewContext(role models.Role, path string) Context {
	return Context{
		IsAdmin:      role == models.RoleAdmin,
		IsMember:     role == models.RoleMember,
		IsAdminPage:  strings.Contains(path, "/admin"),
		IsMemberPage: strings.Contains(path, "/member"),
	}
}

// Variant is the data-source flavor a list view loads from.
type Variant int

const (
	// VariantPublic loads the public page listing.
	VariantPublic Variant = iota
	// VariantMember loads the member page listing.
	VariantMember
	// VariantAdmin loads the admin page listing.
	VariantAdmin
)

// Variant picks the data source for this context: admin pages load the
// admin listing, member pages the member listing, everything else the
// public one.
func (c Context) Variant() Variant {
	switch {
	case c.IsAdminPage:
		return VariantAdmin
	case c.IsMemberPage:
		return VariantMember
	default:
		return VariantPublic
	}
}

package list

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elikia/elikia-client/internal/models"
)

// fakeNav records navigation events.
type fakeNav struct {
	calls []url.Values
}

func (f *fakeNav) Navigate(q url.Values) {
	f.calls = append(f.calls, q)
}

func TestSyncFromQuery_MissingPageRedirects(t *testing.T) {
	nav := &fakeNav{}
	p := NewPaginator(nav, 12)

	_, _, ok := p.SyncFromQuery(url.Values{})
	assert.False(t, ok, "no data load happens this cycle")
	require.Len(t, nav.calls, 1, "exactly one redirect")
	assert.Equal(t, "0", nav.calls[0].Get("page"))
	assert.Equal(t, "12", nav.calls[0].Get("size"))
}

func TestSyncFromQuery_ParsesValues(t *testing.T) {
	p := NewPaginator(&fakeNav{}, 12)

	page, size, ok := p.SyncFromQuery(url.Values{"page": {"3"}, "size": {"24"}})
	require.True(t, ok)
	assert.Equal(t, 3, page)
	assert.Equal(t, 24, size)
	assert.Equal(t, 3, p.CurrentPage)
	assert.Equal(t, 24, p.PageSize)
}

func TestSyncFromQuery_DefaultsOnParseFailure(t *testing.T) {
	nav := &fakeNav{}
	p := NewPaginator(nav, 12)

	page, size, ok := p.SyncFromQuery(url.Values{"page": {"abc"}, "size": {"-1"}})
	require.True(t, ok)
	assert.Equal(t, 0, page)
	assert.Equal(t, 12, size)
	assert.Empty(t, nav.calls, "parse failures do not redirect")
}

func TestApplyPage_UpdatesMetadata(t *testing.T) {
	p := NewPaginator(&fakeNav{}, 12)
	p.CurrentPage = 1

	tag := p.BeginLoad()
	require.True(t, p.ApplyPage(tag, 3, false, false))
	assert.Equal(t, 3, p.TotalPages)
	assert.False(t, p.First)
	assert.False(t, p.Last)
	assert.Equal(t, []int{0, 1, 2}, p.Pages())
}

func TestApplyPage_StaleTagRejected(t *testing.T) {
	p := NewPaginator(&fakeNav{}, 12)

	stale := p.BeginLoad()
	fresh := p.BeginLoad()

	assert.False(t, p.ApplyPage(stale, 9, false, false), "a superseded load must be dropped")
	assert.Equal(t, 0, p.TotalPages, "state untouched by the stale response")
	assert.True(t, p.ApplyPage(fresh, 2, true, false))
	assert.Equal(t, 2, p.TotalPages)
}

func TestGoToPage_OutOfRangeIsNoOp(t *testing.T) {
	nav := &fakeNav{}
	p := NewPaginator(nav, 12)
	tag := p.BeginLoad()
	p.ApplyPage(tag, 3, true, false)

	for _, n := range []int{-1, 3, 99} {
		p.GoToPage(n)
	}
	assert.Empty(t, nav.calls, "no navigation event for out-of-range targets")

	p.GoToPage(2)
	require.Len(t, nav.calls, 1)
	assert.Equal(t, "2", nav.calls[0].Get("page"))
	assert.Equal(t, "12", nav.calls[0].Get("size"))
}

func TestPreviousNextGuards(t *testing.T) {
	nav := &fakeNav{}
	p := NewPaginator(nav, 12)
	tag := p.BeginLoad()
	p.ApplyPage(tag, 2, true, false)
	p.CurrentPage = 0

	p.PreviousPage()
	assert.Empty(t, nav.calls, "previous on the first page is a no-op")

	p.NextPage()
	require.Len(t, nav.calls, 1)
	assert.Equal(t, "1", nav.calls[0].Get("page"))

	p.CurrentPage = 1
	p.First, p.Last = false, true
	p.NextPage()
	assert.Len(t, nav.calls, 1, "next on the last page is a no-op")
}

func TestContextVariant(t *testing.T) {
	tests := []struct {
		name string
		role models.Role
		path string
		want Variant
	}{
		{"admin page", models.RoleAdmin, "/admin/event", VariantAdmin},
		{"member page", models.RoleMember, "/member/event", VariantMember},
		{"public page", models.RoleNone, "/event", VariantPublic},
		{"admin path wins even for member role", models.RoleMember, "/admin/news", VariantAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(tt.role, tt.path)
			assert.Equal(t, tt.want, ctx.Variant())
		})
	}
}

func TestNewContextFlags(t *testing.T) {
	ctx := NewContext(models.RoleAdmin, "/admin/workshop")
	assert.True(t, ctx.IsAdmin)
	assert.False(t, ctx.IsMember)
	assert.True(t, ctx.IsAdminPage)
	assert.False(t, ctx.IsMemberPage)
}

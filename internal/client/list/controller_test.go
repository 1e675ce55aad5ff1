package list

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/elikia/elikia-client/internal/client/api"
	"github.com/elikia/elikia-client/internal/models"
)

// pageServer serves the three listing variants for events and records
// which path was hit.
type pageServer struct {
	*httptest.Server
	lastPath string
	items    []models.Event
	total    int
}

func newPageServer(t *testing.T) *pageServer {
	t.Helper()
	ps := &pageServer{
		items: []models.Event{{EventID: 1, Title: "Hackathon"}, {EventID: 2, Title: "Meetup"}},
		total: 3,
	}
	r := chi.NewRouter()
	serve := func(w http.ResponseWriter, req *http.Request) {
		ps.lastPath = req.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": "200", "message": "", "data": map[string]any{
				"content":    ps.items,
				"number":     0,
				"size":       12,
				"totalPages": ps.total,
				"first":      true,
				"last":       false,
			},
		})
	}
	r.Get("/event/page", serve)
	r.Get("/event/member/page", serve)
	r.Get("/event/public/page", serve)
	r.Delete("/event/{id}", func(w http.ResponseWriter, req *http.Request) {
		ps.lastPath = req.URL.Path
		ps.items = ps.items[:1]
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"code": "200", "message": "Deleted", "data": nil})
	})
	ps.Server = httptest.NewServer(r)
	t.Cleanup(ps.Close)
	return ps
}

func newEventController(srv *pageServer, nav Navigator) *Controller[models.Event] {
	cc := api.NewContent[models.Event](api.New(srv.URL, srv.Client(), zap.NewNop()), api.EventResource)
	return NewController(nav, cc, 12, zap.NewNop())
}

func TestController_VariantSelectsEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		role     models.Role
		path     string
		wantPath string
	}{
		{"admin page", models.RoleAdmin, "/admin/event", "/event/page"},
		{"member page", models.RoleMember, "/member/event", "/event/member/page"},
		{"public page", models.RoleNone, "/event", "/event/public/page"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newPageServer(t)
			c := newEventController(srv, &fakeNav{})
			c.Activate(tt.role, tt.path)

			ok := c.HandleQuery(context.Background(), url.Values{"page": {"0"}, "size": {"12"}})
			require.True(t, ok)
			assert.Equal(t, tt.wantPath, srv.lastPath)
			assert.Len(t, c.Items, 2)
			assert.Equal(t, 3, c.TotalPages)
			assert.Empty(t, c.ErrorMessage)
		})
	}
}

func TestController_MissingPageParamRedirectsOnly(t *testing.T) {
	srv := newPageServer(t)
	nav := &fakeNav{}
	c := newEventController(srv, nav)
	c.Activate(models.RoleNone, "/event")

	ok := c.HandleQuery(context.Background(), url.Values{})
	assert.False(t, ok)
	assert.Empty(t, srv.lastPath, "no request goes out before the defaults redirect lands")
	require.Len(t, nav.calls, 1)
}

func TestController_LoadFailureKeepsState(t *testing.T) {
	srv := newPageServer(t)
	c := newEventController(srv, &fakeNav{})
	c.Activate(models.RoleNone, "/event")
	require.True(t, c.HandleQuery(context.Background(), url.Values{"page": {"0"}, "size": {"12"}}))
	require.Len(t, c.Items, 2)

	srv.Close()
	c.Load(context.Background())

	assert.NotEmpty(t, c.ErrorMessage)
	assert.Len(t, c.Items, 2, "prior items survive a failed load")
	assert.Equal(t, 3, c.TotalPages, "prior metadata survives a failed load")
}

func TestController_DeleteReloadsCurrentPage(t *testing.T) {
	srv := newPageServer(t)
	c := newEventController(srv, &fakeNav{})
	c.Activate(models.RoleAdmin, "/admin/event")
	require.True(t, c.HandleQuery(context.Background(), url.Values{"page": {"0"}, "size": {"12"}}))
	require.Len(t, c.Items, 2)

	require.True(t, c.Delete(context.Background(), 2))
	assert.Equal(t, "/event/page", srv.lastPath, "the delete triggers a reload of the same variant")
	assert.Len(t, c.Items, 1)
	assert.Empty(t, c.ErrorMessage)
}

func TestController_DeleteFailureReported(t *testing.T) {
	srv := newPageServer(t)
	c := newEventController(srv, &fakeNav{})
	c.Activate(models.RoleAdmin, "/admin/event")
	srv.Close()

	assert.False(t, c.Delete(context.Background(), 2))
	assert.NotEmpty(t, c.ErrorMessage)
}

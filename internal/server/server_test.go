package server_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/elikia/elikia-client/internal/client/api"
	"github.com/elikia/elikia-client/internal/client/form"
	"github.com/elikia/elikia-client/internal/client/session"
	"github.com/elikia/elikia-client/internal/client/transport"
	"github.com/elikia/elikia-client/internal/models"
	"github.com/elikia/elikia-client/internal/server"
)

const (
	adminEmail    = "admin@elikia.org"
	adminPassword = "admin-secret"
)

// stack wires the full client over a fresh stub server, the same shape
// the binary assembles.
type stack struct {
	srv    *httptest.Server
	store  *session.Store
	sess   *session.Service
	events *api.ContentClient[models.Event]
	news   *api.ContentClient[models.News]
}

func newStack(t *testing.T) *stack {
	t.Helper()
	log := zap.NewNop()
	secret := []byte("test-secret")

	h := server.NewHandler(server.NewStore(adminEmail, adminPassword), secret, log)
	srv := httptest.NewServer(server.NewRouter(h, secret, log))
	t.Cleanup(srv.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Load())

	httpClient := &http.Client{Transport: transport.NewAuthorizer(nil, store, log)}
	apiClient := api.New(srv.URL, httpClient, log)

	return &stack{
		srv:    srv,
		store:  store,
		sess:   session.NewService(apiClient, store, log),
		events: api.NewContent[models.Event](apiClient, api.EventResource),
		news:   api.NewContent[models.News](apiClient, api.NewsResource),
	}
}

func (s *stack) loginAdmin(t *testing.T) {
	t.Helper()
	env := s.sess.Login(context.Background(), adminEmail, adminPassword)
	require.True(t, env.OK(), "admin login: %s", env.Message)
	require.Equal(t, models.RoleAdmin, s.sess.Role())
}

// createEvent pushes one event through the form controller, the same
// path the create view takes.
func createEvent(t *testing.T, s *stack, title string, visibility models.Visibility) {
	t.Helper()
	fc := form.NewController(form.KindEvent, "event", true, zap.NewNop())
	fc.Draft.Title = title
	fc.Draft.Description = "An evening of talks and demos."
	fc.Draft.Location = "Kinshasa"
	fc.Draft.Address = "12 Avenue de la Paix"
	fc.Draft.Capacity = 80
	fc.Draft.Visibility = visibility
	fc.Draft.AttachFiles(form.Upload{Name: "poster.jpg", Data: []byte("jpeg-bytes")})

	require.True(t, fc.Submit(context.Background(), s.events.Create), "create failed: %s", fc.ErrorMessage)
}

func TestLifecycle_CreateListUpdateDelete(t *testing.T) {
	s := newStack(t)
	s.loginAdmin(t)
	ctx := context.Background()

	createEvent(t, s, "Community Meetup", models.VisibilityPublic)

	env, err := s.events.Page(ctx, 0, 12)
	require.NoError(t, err)
	require.NotNil(t, env.Data)
	require.Len(t, env.Data.Content, 1)
	created := env.Data.Content[0]
	assert.Equal(t, "Community Meetup", created.Title)
	require.Len(t, created.MediaList, 1)
	assert.Equal(t, "/uploads/poster.jpg", created.MediaList[0].ImagePath)
	assert.Equal(t, created.EventID, created.MediaList[0].EventID)

	all, err := s.events.All(ctx)
	require.NoError(t, err)
	require.NotNil(t, all.Data)
	assert.Len(t, *all.Data, 1, "the management listing returns every entity unpaginated")

	// Edit: drop the image, add a video, rename.
	byID, err := s.events.ByID(ctx, created.EventID)
	require.NoError(t, err)
	require.NotNil(t, byID.Data)

	fc := form.NewController(form.KindEvent, "event", false, zap.NewNop())
	fc.Draft.Load(byID.Data.Fields(), byID.Data.MediaList)
	fc.Draft.Title = "Community Meetup (rescheduled)"
	fc.Draft.RemoveExistingImage(byID.Data.MediaList[0].MediaID)
	fc.Draft.VideoURL = "https://youtu.be/abc123"

	update := func(ctx context.Context, contentType string, body io.Reader) (models.Envelope[struct{}], error) {
		return s.events.Update(ctx, created.EventID, contentType, body)
	}
	require.True(t, fc.Submit(ctx, update), "update failed: %s", fc.ErrorMessage)

	updated, err := s.events.ByID(ctx, created.EventID)
	require.NoError(t, err)
	require.NotNil(t, updated.Data)
	assert.Equal(t, "Community Meetup (rescheduled)", updated.Data.Title)
	require.Len(t, updated.Data.MediaList, 1, "the removed image is gone, only the video remains")
	assert.Equal(t, "https://youtu.be/abc123", updated.Data.MediaList[0].VideoURL)
	assert.Equal(t, models.DisplayVideo, models.DisplayTypeOf(updated.Data.MediaList))

	// Delete, then the admin page is empty.
	delEnv, err := s.events.Delete(ctx, created.EventID)
	require.NoError(t, err)
	assert.True(t, delEnv.OK())

	after, err := s.events.Page(ctx, 0, 12)
	require.NoError(t, err)
	assert.Empty(t, after.Data.Content)
}

func TestVisibility_PublicVsMember(t *testing.T) {
	s := newStack(t)
	s.loginAdmin(t)
	ctx := context.Background()

	createEvent(t, s, "Open Day", models.VisibilityPublic)
	createEvent(t, s, "Members Night", models.VisibilityMemberOnly)

	memberPage, err := s.events.MemberPage(ctx, 0, 12)
	require.NoError(t, err)
	assert.Len(t, memberPage.Data.Content, 2, "members see everything")

	publicPage, err := s.events.PublicPage(ctx, 0, 12)
	require.NoError(t, err)
	require.Len(t, publicPage.Data.Content, 1, "the public listing filters member-only content")
	assert.Equal(t, "Open Day", publicPage.Data.Content[0].Title)
}

func TestAuthorization_MemberCannotMutate(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	reg := s.sess.Register(ctx, models.RegisterRequest{
		Email: "member@elikia.org", Password: "pw", ConfirmPassword: "pw",
	})
	require.True(t, reg.OK(), reg.Message)

	env := s.sess.Login(ctx, "member@elikia.org", "pw")
	require.True(t, env.OK())
	require.Equal(t, models.RoleMember, s.sess.Role())

	_, err := s.events.Delete(ctx, 1)
	apiErr, ok := api.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.True(t, s.sess.IsAuthenticated(), "a 403 does not end the session")
}

func TestExpiredCredential_ForcesLogout(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	// A credential the server did not sign: protected calls come back
	// 401 and the interceptor drops the session.
	require.NoError(t, s.store.SetSession("not-a-real-token", models.RoleAdmin))
	require.True(t, s.sess.IsAuthenticated())

	_, err := s.events.Page(ctx, 0, 12)
	apiErr, ok := api.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.False(t, s.sess.IsAuthenticated(), "the 401 cleared the stored session")
	assert.Equal(t, models.RoleNone, s.sess.Role())
}

func TestAnonymous_PublicEndpointsOnly(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	// Seed through a logged-in admin, then drop the session.
	s.loginAdmin(t)
	createEvent(t, s, "Open Day", models.VisibilityPublic)
	s.sess.Logout()

	pub, err := s.events.PublicPage(ctx, 0, 12)
	require.NoError(t, err)
	assert.Len(t, pub.Data.Content, 1)

	latest, err := s.events.Latest(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, latest.Data)
	assert.Len(t, *latest.Data, 1)

	_, err = s.events.MemberPage(ctx, 0, 12)
	apiErr, ok := api.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	req := models.RegisterRequest{Email: "dup@elikia.org", Password: "pw", ConfirmPassword: "pw"}

	require.True(t, s.sess.Register(ctx, req).OK())
	again := s.sess.Register(ctx, req)
	assert.False(t, again.OK())
	assert.Equal(t, "Email already registered", again.Message)
}

package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/elikia/elikia-client/internal/models"
)

// defaultLatestLimit matches the backend default for the latest feed.
const defaultLatestLimit = 4

// Resource identifies one content entity on the REST surface: its
// path segment and the name of its JSON part in multipart submissions.
type Resource struct {
	Name    string
	PartKey string
}

var (
	// NewsResource addresses the /news endpoints.
	NewsResource = Resource{Name: "news", PartKey: "news"}
	// EventResource addresses the /event endpoints.
	EventResource = Resource{Name: "event", PartKey: "event"}
	// WorkshopResource addresses the /workshop endpoints.
	WorkshopResource = Resource{Name: "workshop", PartKey: "workshop"}
)

// ContentClient is the per-entity API client, parameterized over the
// entity model so callers get typed pages and items back.
type ContentClient[T any] struct {
	c   *Client
	res Resource
}

// NewContent constructs a content client for one resource.
func NewContent[T any](c *Client, res Resource) *ContentClient[T] {
	return &ContentClient[T]{c: c, res: res}
}

// Resource returns the resource this client addresses.
func (cc *ContentClient[T]) Resource() Resource {
	return cc.res
}

// Page fetches the admin page listing.
func (cc *ContentClient[T]) Page(ctx context.Context, page, size int) (models.Envelope[models.Page[T]], error) {
	return cc.page(ctx, "/page", page, size)
}

// MemberPage fetches the member page listing.
func (cc *ContentClient[T]) MemberPage(ctx context.Context, page, size int) (models.Envelope[models.Page[T]], error) {
	return cc.page(ctx, "/member/page", page, size)
}

// PublicPage fetches the public page listing.
func (cc *ContentClient[T]) PublicPage(ctx context.Context, page, size int) (models.Envelope[models.Page[T]], error) {
	return cc.page(ctx, "/public/page", page, size)
}

func (cc *ContentClient[T]) page(ctx context.Context, suffix string, page, size int) (models.Envelope[models.Page[T]], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	return getJSON[models.Page[T]](ctx, cc.c, "/"+cc.res.Name+suffix, query)
}

// Latest fetches the most recent published items. A non-positive
// limit uses the backend default of 4.
func (cc *ContentClient[T]) Latest(ctx context.Context, limit int) (models.Envelope[[]T], error) {
	if limit <= 0 {
		limit = defaultLatestLimit
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	return getJSON[[]T](ctx, cc.c, "/"+cc.res.Name+"/latest", query)
}

// All fetches the full management listing (admin only).
func (cc *ContentClient[T]) All(ctx context.Context) (models.Envelope[[]T], error) {
	return getJSON[[]T](ctx, cc.c, "/"+cc.res.Name+"/management", nil)
}

// ByID fetches a single entity.
func (cc *ContentClient[T]) ByID(ctx context.Context, id int64) (models.Envelope[T], error) {
	return getJSON[T](ctx, cc.c, fmt.Sprintf("/%s/%d", cc.res.Name, id), nil)
}

// Create posts a multipart submission to /{entity}/add (admin only).
func (cc *ContentClient[T]) Create(ctx context.Context, contentType string, body io.Reader) (models.Envelope[struct{}], error) {
	return sendBody[struct{}](ctx, cc.c, http.MethodPost, "/"+cc.res.Name+"/add", contentType, body)
}

// Update puts a multipart submission to /{entity}/{id} (admin only).
func (cc *ContentClient[T]) Update(ctx context.Context, id int64, contentType string, body io.Reader) (models.Envelope[struct{}], error) {
	return sendBody[struct{}](ctx, cc.c, http.MethodPut, fmt.Sprintf("/%s/%d", cc.res.Name, id), contentType, body)
}

// Delete removes an entity (admin only).
func (cc *ContentClient[T]) Delete(ctx context.Context, id int64) (models.Envelope[struct{}], error) {
	return sendBody[struct{}](ctx, cc.c, http.MethodDelete, fmt.Sprintf("/%s/%d", cc.res.Name, id), "", nil)
}

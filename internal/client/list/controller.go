package list

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/elikia/elikia-client/internal/client/api"
	"github.com/elikia/elikia-client/internal/models"
)

// msgLoadFailed is the fallback shown when a page load fails without a
// usable server message.
const msgLoadFailed = "Failed to load page"

// Controller drives one paginated list view for an entity type: it
// owns the paginator, the role/page context and the items of the
// current page. Failures never escape; they land in ErrorMessage with
// prior state left intact.
type Controller[T any] struct {
	*Paginator

	api *api.ContentClient[T]
	log *zap.Logger

	// Ctx is the role/page context, computed once per activation.
	Ctx Context

	// Items holds the content of the current page.
	Items []T
	// ErrorMessage is the view-local failure message, "" when healthy.
	ErrorMessage string
}

// NewController builds a list controller over the given content client.
func NewController[T any](nav Navigator, contentAPI *api.ContentClient[T], defaultSize int, log *zap.Logger) *Controller[T] {
	return &Controller[T]{
		Paginator: NewPaginator(nav, defaultSize),
		api:       contentAPI,
		log:       log,
	}
}

// Activate computes the role/page context for this view activation.
func (c *Controller[T]) Activate(role models.Role, path string) {
	c.Ctx = NewContext(role, path)
}

// HandleQuery runs one query cycle: reconcile page/size from the URL,
// then load the matching page. It reports false when the cycle ended
// in the fill-in-defaults redirect and no load happened.
func (c *Controller[T]) HandleQuery(ctx context.Context, q url.Values) bool {
	if _, _, ok := c.SyncFromQuery(q); !ok {
		return false
	}
	c.Load(ctx)
	return true
}

// Load fetches the current page from the variant the context selects
// and applies the result. A response belonging to a superseded load is
// dropped.
func (c *Controller[T]) Load(ctx context.Context) {
	tag := c.BeginLoad()

	var (
		env models.Envelope[models.Page[T]]
		err error
	)
	switch c.Ctx.Variant() {
	case VariantAdmin:
		env, err = c.api.Page(ctx, c.CurrentPage, c.PageSize)
	case VariantMember:
		env, err = c.api.MemberPage(ctx, c.CurrentPage, c.PageSize)
	default:
		env, err = c.api.PublicPage(ctx, c.CurrentPage, c.PageSize)
	}

	if err != nil {
		c.ErrorMessage = api.Normalize(err, msgLoadFailed)
		c.log.Warn("page load failed",
			zap.String("resource", c.api.Resource().Name),
			zap.Error(err))
		return
	}
	if !env.OK() || env.Data == nil {
		c.ErrorMessage = env.Message
		return
	}
	if !c.ApplyPage(tag, env.Data.TotalPages, env.Data.First, env.Data.Last) {
		// A newer load was issued while this one was in flight.
		return
	}
	c.Items = env.Data.Content
	c.ErrorMessage = ""
}

// Delete removes an item after the view confirmed it, then reloads the
// current page from the same variant. The page is treated as the
// source of truth, so no optimistic local removal happens. It reports
// whether the deletion succeeded.
func (c *Controller[T]) Delete(ctx context.Context, id int64) bool {
	env, err := c.api.Delete(ctx, id)
	if err != nil {
		c.ErrorMessage = api.Normalize(err, "Failed to delete")
		return false
	}
	if !env.OK() {
		c.ErrorMessage = env.Message
		return false
	}
	c.Load(ctx)
	return true
}

package form

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/elikia/elikia-client/internal/client/api"
	"github.com/elikia/elikia-client/internal/models"
)

// msgServerError is the fallback when a submission fails without a
// usable server message.
const msgServerError = "Server error"

// SendFunc delivers a built submission to the backend. The content
// client's Create matches it directly; Update is wrapped in a closure
// binding the entity id.
type SendFunc func(ctx context.Context, contentType string, body io.Reader) (models.Envelope[struct{}], error)

// Controller runs the validate/submit protocol around a draft:
// Idle -> Validating -> (Invalid -> Idle | Valid -> Submitting) ->
// (Succeeded | Failed -> Idle-with-error). One attempt per user
// action, no automatic retry.
type Controller struct {
	Draft   *Draft
	PartKey string
	// Creating distinguishes the create flow, which additionally
	// requires at least one media attachment before submission.
	Creating bool

	// ErrorMessage is the view-local failure message, "" when healthy.
	ErrorMessage string

	log *zap.Logger
}

// NewController builds a form controller around a fresh draft.
func NewController(kind Kind, partKey string, creating bool, log *zap.Logger) *Controller {
	return &Controller{
		Draft:    NewDraft(kind),
		PartKey:  partKey,
		Creating: creating,
		log:      log,
	}
}

// Submit validates the draft, builds the multipart payload and sends
// it. It reports success; every failure lands in ErrorMessage and a
// validation failure never reaches the network. On success the caller
// navigates away and discards the draft.
func (c *Controller) Submit(ctx context.Context, send SendFunc) bool {
	c.ErrorMessage = ""

	if msg := c.Draft.Validate(); msg != "" {
		c.ErrorMessage = msg
		return false
	}
	if c.Creating && !c.Draft.HasMedia() {
		c.ErrorMessage = MsgMediaRequired
		return false
	}

	sub, err := c.Draft.BuildSubmission(c.PartKey)
	if err != nil {
		c.ErrorMessage = api.Normalize(err, msgServerError)
		return false
	}

	env, err := send(ctx, sub.ContentType, sub.Reader())
	if err != nil {
		c.ErrorMessage = api.Normalize(err, msgServerError)
		c.log.Warn("submission failed", zap.String("part", c.PartKey), zap.Error(err))
		return false
	}
	if !env.OK() {
		c.ErrorMessage = env.Message
		return false
	}
	return true
}

// Package form implements the media-backed form controller: a Draft
// staging scalar fields, newly attached files and pending media
// removals, validated in a fixed order and serialized into the
// multipart submission the backend expects.
package form

import (
	"regexp"
	"strings"

	"github.com/elikia/elikia-client/internal/models"
)

// MaxFileSize is the per-file attachment ceiling.
const MaxFileSize = 10 << 20

// Validation and media messages surfaced to the view.
const (
	MsgTitleInvalid       = "Title is required and must be between 2 and 255 characters"
	MsgDescriptionInvalid = "Description must be between 2 and 2000 characters"
	MsgVideoURLInvalid    = "Invalid YouTube URL"
	MsgLocationInvalid    = "Location must be between 3 and 255 characters"
	MsgAddressInvalid     = "Address must be between 5 and 255 characters"
	MsgCapacityInvalid    = "Invalid capacity"
	MsgFileTooLarge       = "Image too large (max 10MB)"
	MsgMediaRequired      = "Please provide an image or a video"
)

// videoURLPattern accepts YouTube watch and short links.
var videoURLPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.+$`)

// Kind selects which fields a draft carries: news has no schedule or
// venue but adds a publication state.
type Kind int

const (
	KindNews Kind = iota
	KindEvent
	KindWorkshop
)

// Upload is a locally attached file pending submission.
type Upload struct {
	Name string
	Data []byte
}

// ExistingImage is an image already persisted on the backend for the
// entity being edited.
type ExistingImage struct {
	ID   int64
	Path string
}

// ExistingVideo is the single persisted video slot of an entity.
type ExistingVideo struct {
	ID  int64
	URL string
}

// Draft is the client-side staging area of a create or edit form.
// It is created empty on view entry (or pre-filled from a loaded
// entity), mutated by user input and explicit remove actions, and
// consumed by BuildSubmission.
type Draft struct {
	kind Kind

	Title       string
	Description string
	StartDate   string
	EndDate     string
	Location    string
	Address     string
	Capacity    int
	Visibility  models.Visibility
	VideoURL    string

	// News-only publication fields.
	Status      models.ContentStatus
	PublishedAt string

	pending        []Upload
	existingImages []ExistingImage
	existingVideo  *ExistingVideo
	removed        []int64
}

// NewDraft produces an empty draft for a create flow.
func NewDraft(kind Kind) *Draft {
	return &Draft{
		kind:       kind,
		Visibility: models.VisibilityPublic,
		Status:     models.StatusCreated,
	}
}

// Load pre-fills the draft from a loaded entity for an edit flow. The
// media list is partitioned into existing images and at most one
// existing video; a found video URL is mirrored into the draft's video
// field so the form shows it as already provided.
func (d *Draft) Load(fields models.ContentFields, mediaList []models.Media) {
	d.Title = fields.Title
	d.Description = fields.Description
	d.StartDate = fields.StartDate
	d.EndDate = fields.EndDate
	d.Location = fields.Location
	d.Address = fields.Address
	d.Capacity = fields.Capacity
	if fields.Visibility != "" {
		d.Visibility = fields.Visibility
	}

	d.existingImages = nil
	d.existingVideo = nil
	for _, m := range mediaList {
		if m.ImagePath != "" {
			d.existingImages = append(d.existingImages, ExistingImage{ID: m.MediaID, Path: m.ImagePath})
		}
	}
	for _, m := range mediaList {
		if m.VideoURL != "" {
			d.existingVideo = &ExistingVideo{ID: m.MediaID, URL: m.VideoURL}
			d.VideoURL = m.VideoURL
			break
		}
	}
}

// AttachFiles appends files to the pending-upload set. A file over the
// size ceiling is skipped, and only that file; the returned message is
// "" when everything was accepted. Repeated calls accumulate; callers
// wanting replace semantics clear the pending set first.
func (d *Draft) AttachFiles(files ...Upload) string {
	msg := ""
	for _, f := range files {
		if len(f.Data) > MaxFileSize {
			msg = MsgFileTooLarge
			continue
		}
		d.pending = append(d.pending, f)
	}
	return msg
}

// ClearPending drops all not-yet-submitted file attachments.
func (d *Draft) ClearPending() {
	d.pending = nil
}

// Pending returns the files queued for upload.
func (d *Draft) Pending() []Upload {
	return d.pending
}

// ExistingImages returns the persisted images still visible in the form.
func (d *Draft) ExistingImages() []ExistingImage {
	return d.existingImages
}

// Video returns the persisted video slot, or nil.
func (d *Draft) Video() *ExistingVideo {
	return d.existingVideo
}

// RemovedIDs returns the persisted media ids staged for removal.
func (d *Draft) RemovedIDs() []int64 {
	return d.removed
}

// RemoveExistingImage hides the image from the visible set and stages
// its id for removal on submit; the backend is not called here.
// Staging the same id twice records it once.
func (d *Draft) RemoveExistingImage(id int64) {
	kept := d.existingImages[:0]
	for _, img := range d.existingImages {
		if img.ID != id {
			kept = append(kept, img)
		}
	}
	d.existingImages = kept
	d.stageRemoval(id)
}

// RemoveExistingVideo clears the persisted video slot, stages its id
// for removal and empties the draft's video field so the form no
// longer shows it as provided.
func (d *Draft) RemoveExistingVideo() {
	if d.existingVideo == nil {
		return
	}
	d.stageRemoval(d.existingVideo.ID)
	d.existingVideo = nil
	d.VideoURL = ""
}

func (d *Draft) stageRemoval(id int64) {
	for _, r := range d.removed {
		if r == id {
			return
		}
	}
	d.removed = append(d.removed, id)
}

// HasMedia reports whether the draft carries at least one pending file
// or a provided video URL. Creating an entity without either is
// rejected client-side.
func (d *Draft) HasMedia() bool {
	return len(d.pending) > 0 || strings.TrimSpace(d.VideoURL) != ""
}

// Validate checks the draft field by field in a fixed priority order
// (title, description, video URL, location, address, capacity) and
// returns the first failing field's message, or "" when the draft is
// fully valid. Fields the draft kind does not carry are skipped. The
// video URL is optional; when present it must be a YouTube link.
func (d *Draft) Validate() string {
	if n := len(strings.TrimSpace(d.Title)); n < 2 || n > 255 {
		return MsgTitleInvalid
	}
	if n := len(strings.TrimSpace(d.Description)); n < 2 || n > 2000 {
		return MsgDescriptionInvalid
	}
	if v := strings.TrimSpace(d.VideoURL); v != "" && !videoURLPattern.MatchString(v) {
		return MsgVideoURLInvalid
	}
	if d.kind != KindNews {
		if n := len(strings.TrimSpace(d.Location)); n < 3 || n > 255 {
			return MsgLocationInvalid
		}
		if n := len(strings.TrimSpace(d.Address)); n < 5 || n > 255 {
			return MsgAddressInvalid
		}
		if d.Capacity < 1 || d.Capacity > 50000 {
			return MsgCapacityInvalid
		}
	}
	return ""
}

// Package models defines the core data structures exchanged with the
// Elikia content-management backend: content entities, media, roles
// and the response envelopes every endpoint uses.
package models

// Role is the access level embedded in the session credential.
type Role string

const (
	// RoleAdmin grants access to the management views and mutations.
	RoleAdmin Role = "ADMIN"
	// RoleMember grants access to member-only content.
	RoleMember Role = "MEMBER"
	// RoleNone is the absence of a role (anonymous, or undecodable credential).
	RoleNone Role = ""
)

// Visibility controls which audience may see a content entity.
type Visibility string

const (
	// VisibilityPublic content is readable without authentication.
	VisibilityPublic Visibility = "PUBLIC"
	// VisibilityMemberOnly content requires an authenticated member.
	VisibilityMemberOnly Visibility = "MEMBER_ONLY"
)

// ContentStatus is the publication state of a news entry.
type ContentStatus string

const (
	// StatusCreated marks a draft that is not yet published.
	StatusCreated ContentStatus = "CREATED"
	// StatusPublished marks publicly listed content.
	StatusPublished ContentStatus = "PUBLISHED"
)

// DisplayType tells a view which media slot to render for an entity.
// It is derived from the first media item at load time, never persisted.
type DisplayType string

const (
	DisplayImage DisplayType = "IMAGE"
	DisplayVideo DisplayType = "VIDEO"
	DisplayNone  DisplayType = "NONE"
)

// Media is a single media attachment. It belongs to exactly one parent
// entity and carries exactly one media kind: an image path or a video URL.
type Media struct {
	// MediaID is the unique identifier of the media.
	MediaID int64 `json:"mediaId"`
	// Caption is an optional description of the media.
	Caption string `json:"caption,omitempty"`
	// ImagePath is the server-side path of an image attachment.
	ImagePath string `json:"imagePath,omitempty"`
	// VideoURL is a YouTube video link.
	VideoURL string `json:"videoUrl,omitempty"`
	// Parent identifiers; only one is non-zero.
	NewsID     int64 `json:"newsId,omitempty"`
	EventID    int64 `json:"eventId,omitempty"`
	WorkshopID int64 `json:"workshopId,omitempty"`
}

// News represents a news entry received from the backend.
type News struct {
	// NewsID is the unique identifier of the news.
	NewsID int64 `json:"newsId"`
	// Title of the news.
	Title string `json:"title"`
	// Content is the rich-text body.
	Content string `json:"content"`
	// PublishedAt is the publication date.
	PublishedAt string `json:"publishedAt"`
	// Visibility status (PUBLIC / MEMBER_ONLY).
	Visibility Visibility `json:"visibility"`
	// ContentStatus is the publication state (CREATED / PUBLISHED).
	ContentStatus ContentStatus `json:"contentStatus"`
	// MediaList holds the associated media.
	MediaList []Media `json:"mediaList,omitempty"`
	// DisplayType is derived client-side, never sent by the backend.
	DisplayType DisplayType `json:"-"`
}

// Event represents an event entity received from the backend.
type Event struct {
	EventID     int64      `json:"eventId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate"`
	Location    string     `json:"location"`
	Address     string     `json:"address"`
	Capacity    int        `json:"capacity"`
	Visibility  Visibility `json:"visibility"`
	MediaList   []Media    `json:"mediaList,omitempty"`
	DisplayType DisplayType `json:"-"`
}

// Workshop represents a workshop entity received from the backend.
// It shares the event shape but lives under its own REST resource.
type Workshop struct {
	WorkshopID  int64      `json:"workshopId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate"`
	Location    string     `json:"location"`
	Address     string     `json:"address"`
	Capacity    int        `json:"capacity"`
	Visibility  Visibility `json:"visibility"`
	MediaList   []Media    `json:"mediaList,omitempty"`
	DisplayType DisplayType `json:"-"`
}

// ContentFields is the common scalar shape shared by every content
// entity, used to stage form drafts and build submission payloads.
type ContentFields struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate"`
	Location    string     `json:"location"`
	Address     string     `json:"address"`
	Capacity    int        `json:"capacity"`
	Visibility  Visibility `json:"visibility"`
}

// Fields projects a news entry onto the common scalar shape.
// News stores its body under "content" and has no schedule or venue.
func (n News) Fields() ContentFields {
	return ContentFields{
		Title:       n.Title,
		Description: n.Content,
		Visibility:  n.Visibility,
	}
}

// Fields projects an event onto the common scalar shape.
func (e Event) Fields() ContentFields {
	return ContentFields{
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Location:    e.Location,
		Address:     e.Address,
		Capacity:    e.Capacity,
		Visibility:  e.Visibility,
	}
}

// Fields projects a workshop onto the common scalar shape.
func (w Workshop) Fields() ContentFields {
	return ContentFields{
		Title:       w.Title,
		Description: w.Description,
		StartDate:   w.StartDate,
		EndDate:     w.EndDate,
		Location:    w.Location,
		Address:     w.Address,
		Capacity:    w.Capacity,
		Visibility:  w.Visibility,
	}
}

// DisplayTypeOf derives the media slot to render from the first media
// item of an entity: image wins over video, no media means NONE.
func DisplayTypeOf(mediaList []Media) DisplayType {
	if len(mediaList) == 0 {
		return DisplayNone
	}
	first := mediaList[0]
	switch {
	case first.ImagePath != "":
		return DisplayImage
	case first.VideoURL != "":
		return DisplayVideo
	default:
		return DisplayNone
	}
}

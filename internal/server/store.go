// Package server implements the in-memory stub backend speaking the
// Elikia envelope protocol. It backs the integration tests and the
// local development loop; it is not the production server.
package server

import (
	"sync"

	"github.com/elikia/elikia-client/internal/models"
)

// user is a registered account.
type user struct {
	Password string
	Role     models.Role
}

// entity is one stored content item. Scalar fields are kept as the
// decoded JSON part so the stub stays agnostic of per-entity shapes.
type entity struct {
	ID     int64
	Fields map[string]any
	Media  []models.Media
}

// render projects the entity into the wire shape of its resource,
// adding the {resource}Id key and the media list.
func (e entity) render(resource string) map[string]any {
	out := make(map[string]any, len(e.Fields)+2)
	for k, v := range e.Fields {
		out[k] = v
	}
	out[resource+"Id"] = e.ID
	out["mediaList"] = e.Media
	return out
}

// Store is the in-memory backing state of the stub server.
type Store struct {
	mu          sync.Mutex
	users       map[string]user
	items       map[string][]entity
	nextID      int64
	nextMediaID int64
}

// NewStore creates an empty store with one seeded admin account.
func NewStore(adminEmail, adminPassword string) *Store {
	return &Store{
		users: map[string]user{
			adminEmail: {Password: adminPassword, Role: models.RoleAdmin},
		},
		items: make(map[string][]entity),
	}
}

// Authenticate checks credentials and returns the account role.
func (s *Store) Authenticate(email, password string) (models.Role, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok || u.Password != password {
		return models.RoleNone, false
	}
	return u.Role, true
}

// AddUser registers a member account. It reports false when the email
// is already taken.
func (s *Store) AddUser(email, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[email]; exists {
		return false
	}
	s.users[email] = user{Password: password, Role: models.RoleMember}
	return true
}

// Insert stores a new entity and returns its id.
func (s *Store) Insert(resource string, fields map[string]any, media []models.Media) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	setParent(media, resource, s.nextID)
	s.items[resource] = append(s.items[resource], entity{
		ID:     s.nextID,
		Fields: fields,
		Media:  media,
	})
	return s.nextID
}

// setParent stamps the single parent foreign key on new media.
func setParent(media []models.Media, resource string, id int64) {
	for i := range media {
		switch resource {
		case "news":
			media[i].NewsID = id
		case "event":
			media[i].EventID = id
		case "workshop":
			media[i].WorkshopID = id
		}
	}
}

// Update replaces an entity's scalar fields, drops the removed media
// and appends the new ones. It reports whether the entity existed.
func (s *Store) Update(resource string, id int64, fields map[string]any, added []models.Media, removedIDs []int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.items[resource]
	for i := range list {
		if list[i].ID != id {
			continue
		}
		list[i].Fields = fields
		setParent(added, resource, id)
		kept := list[i].Media[:0]
		for _, m := range list[i].Media {
			if !containsID(removedIDs, m.MediaID) {
				kept = append(kept, m)
			}
		}
		merged := append(kept, added...)
		// An entity carries at most one video slot; a re-submitted
		// videoUrl must not duplicate the surviving one.
		videoSeen := false
		final := merged[:0]
		for _, m := range merged {
			if m.VideoURL != "" {
				if videoSeen {
					continue
				}
				videoSeen = true
			}
			final = append(final, m)
		}
		list[i].Media = final
		return true
	}
	return false
}

// Delete removes an entity, reporting whether it existed.
func (s *Store) Delete(resource string, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.items[resource]
	for i := range list {
		if list[i].ID == id {
			s.items[resource] = append(list[:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns one entity in wire shape.
func (s *Store) Get(resource string, id int64) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.items[resource] {
		if e.ID == id {
			return e.render(resource), true
		}
	}
	return nil, false
}

// All returns every entity of a resource in wire shape, newest last.
func (s *Store) All(resource string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderAll(resource, func(entity) bool { return true })
}

// Visible returns the entities a non-admin audience may list. Members
// see everything; the public audience only PUBLIC entities.
func (s *Store) Visible(resource string, member bool) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderAll(resource, func(e entity) bool {
		if member {
			return true
		}
		vis, _ := e.Fields["visibility"].(string)
		return vis == "" || vis == string(models.VisibilityPublic)
	})
}

// Latest returns the most recent entities in wire shape, newest first.
func (s *Store) Latest(resource string, limit int) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	// renderAll keeps insertion order; walk backwards for newest first.
	all := s.renderAll(resource, func(entity) bool { return true })
	out := make([]map[string]any, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out
}

// NewMediaID allocates the next media identifier.
func (s *Store) NewMediaID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextMediaID++
	return s.nextMediaID
}

// renderAll projects matching entities. Caller must hold s.mu.
func (s *Store) renderAll(resource string, keep func(entity) bool) []map[string]any {
	out := make([]map[string]any, 0, len(s.items[resource]))
	for _, e := range s.items[resource] {
		if keep(e) {
			out = append(out, e.render(resource))
		}
	}
	return out
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

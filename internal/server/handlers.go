package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/elikia/elikia-client/internal/models"
)

// maxUploadMemory bounds in-memory multipart parsing.
const maxUploadMemory = 32 << 20

// Handler serves the stub API endpoints over the in-memory store.
type Handler struct {
	store  *Store
	secret []byte
	log    *zap.Logger
}

// NewHandler constructs the stub handler set.
func NewHandler(store *Store, secret []byte, log *zap.Logger) *Handler {
	return &Handler{store: store, secret: secret, log: log}
}

// envelope is the uniform response wrapper.
type envelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// writeEnvelope serializes one envelope response.
func writeEnvelope(w http.ResponseWriter, status int, code, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Code: code, Message: message, Data: data})
}

// pageData mirrors the backend's page envelope shape.
type pageData struct {
	Content       []map[string]any `json:"content"`
	Number        int              `json:"number"`
	Size          int              `json:"size"`
	TotalPages    int              `json:"totalPages"`
	TotalElements int              `json:"totalElements"`
	First         bool             `json:"first"`
	Last          bool             `json:"last"`
}

// paginate slices items into the requested page.
func paginate(items []map[string]any, page, size int) pageData {
	if size <= 0 {
		size = 12
	}
	if page < 0 {
		page = 0
	}
	total := len(items)
	totalPages := (total + size - 1) / size

	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return pageData{
		Content:       items[start:end],
		Number:        page,
		Size:          size,
		TotalPages:    totalPages,
		TotalElements: total,
		First:         page == 0,
		Last:          totalPages == 0 || page >= totalPages-1,
	}
}

// pageParams reads page/size from the query string.
func pageParams(r *http.Request) (page, size int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	size, _ = strconv.Atoi(r.URL.Query().Get("size"))
	return page, size
}

// Login authenticates credentials and issues a signed token carrying
// the role claim.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeEnvelope(w, http.StatusBadRequest, "400", "Invalid request", nil)
		return
	}

	role, ok := h.store.Authenticate(req.Email, req.Password)
	if !ok {
		writeEnvelope(w, http.StatusUnauthorized, "401", "Invalid email or password", nil)
		return
	}

	token, err := issueToken(h.secret, req.Email, role)
	if err != nil {
		h.log.Error("token issue failed", zap.Error(err))
		writeEnvelope(w, http.StatusInternalServerError, "500", "Internal error", nil)
		return
	}
	writeEnvelope(w, http.StatusOK, "200", "Login successful", models.TokenData{Token: token})
}

// Register creates a member account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeEnvelope(w, http.StatusBadRequest, "400", "Invalid request", nil)
		return
	}
	if req.Password != req.ConfirmPassword {
		writeEnvelope(w, http.StatusOK, "400", "Passwords do not match", nil)
		return
	}
	if !h.store.AddUser(req.Email, req.Password) {
		writeEnvelope(w, http.StatusOK, "409", "Email already registered", nil)
		return
	}
	writeEnvelope(w, http.StatusOK, "201", "Account created", nil)
}

// AdminPage serves the full paginated listing.
func (h *Handler) AdminPage(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size := pageParams(r)
		writeEnvelope(w, http.StatusOK, "200", "", paginate(h.store.All(resource), page, size))
	}
}

// MemberPage serves the member paginated listing.
func (h *Handler) MemberPage(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size := pageParams(r)
		writeEnvelope(w, http.StatusOK, "200", "", paginate(h.store.Visible(resource, true), page, size))
	}
}

// PublicPage serves the public paginated listing.
func (h *Handler) PublicPage(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size := pageParams(r)
		writeEnvelope(w, http.StatusOK, "200", "", paginate(h.store.Visible(resource, false), page, size))
	}
}

// Latest serves the most recent items.
func (h *Handler) Latest(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
		if err != nil || limit <= 0 {
			limit = 4
		}
		writeEnvelope(w, http.StatusOK, "200", "", h.store.Latest(resource, limit))
	}
}

// Management serves the full unpaginated listing.
func (h *Handler) Management(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "200", "", h.store.All(resource))
	}
}

// ByID serves one entity.
func (h *Handler) ByID(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeEnvelope(w, http.StatusBadRequest, "400", "Invalid id", nil)
			return
		}
		item, ok := h.store.Get(resource, id)
		if !ok {
			writeEnvelope(w, http.StatusNotFound, "404", "Not found", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, "200", "", item)
	}
}

// Create stores a new entity from a multipart submission.
func (h *Handler) Create(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, media, _, ok := h.parseSubmission(w, r, resource)
		if !ok {
			return
		}
		h.store.Insert(resource, fields, media)
		writeEnvelope(w, http.StatusOK, "201", "Created", nil)
	}
}

// Update replaces an entity from a multipart submission.
func (h *Handler) Update(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeEnvelope(w, http.StatusBadRequest, "400", "Invalid id", nil)
			return
		}
		fields, media, removed, ok := h.parseSubmission(w, r, resource)
		if !ok {
			return
		}
		if !h.store.Update(resource, id, fields, media, removed) {
			writeEnvelope(w, http.StatusNotFound, "404", "Not found", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, "200", "Updated", nil)
	}
}

// Delete removes an entity.
func (h *Handler) Delete(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeEnvelope(w, http.StatusBadRequest, "400", "Invalid id", nil)
			return
		}
		if !h.store.Delete(resource, id) {
			writeEnvelope(w, http.StatusNotFound, "404", "Not found", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, "200", "Deleted", nil)
	}
}

// parseSubmission decodes the multipart wire format: one JSON part
// named after the resource, zero or more "files" parts, an optional
// removedMediaIds JSON part and an optional videoUrl text part.
func (h *Handler) parseSubmission(w http.ResponseWriter, r *http.Request, resource string) (fields map[string]any, media []models.Media, removed []int64, ok bool) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeEnvelope(w, http.StatusBadRequest, "400", "Invalid multipart payload", nil)
		return nil, nil, nil, false
	}

	if err := json.Unmarshal([]byte(r.FormValue(resource)), &fields); err != nil {
		writeEnvelope(w, http.StatusBadRequest, "400", "Invalid "+resource+" part", nil)
		return nil, nil, nil, false
	}

	for _, fh := range r.MultipartForm.File["files"] {
		media = append(media, models.Media{
			MediaID:   h.store.NewMediaID(),
			ImagePath: "/uploads/" + fh.Filename,
		})
	}
	if video := r.FormValue("videoUrl"); video != "" {
		media = append(media, models.Media{
			MediaID:  h.store.NewMediaID(),
			VideoURL: video,
		})
	}
	if raw := r.FormValue("removedMediaIds"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &removed); err != nil {
			writeEnvelope(w, http.StatusBadRequest, "400", "Invalid removedMediaIds part", nil)
			return nil, nil, nil, false
		}
	}
	return fields, media, removed, true
}

package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/elikia/elikia-client/internal/models"
)

// Submission is the serialized multipart payload of one submit attempt.
type Submission struct {
	ContentType string
	body        []byte
}

// Reader returns a fresh reader over the payload.
func (s *Submission) Reader() io.Reader {
	return bytes.NewReader(s.body)
}

// Bytes returns the raw payload, used by tests to parse it back.
func (s *Submission) Bytes() []byte {
	return s.body
}

// newsDTO is the scalar part of a news submission.
type newsDTO struct {
	Title         string               `json:"title"`
	Content       string               `json:"content"`
	Visibility    models.Visibility    `json:"visibility"`
	ContentStatus models.ContentStatus `json:"contentStatus"`
	PublishedAt   string               `json:"publishedAt,omitempty"`
}

// BuildSubmission serializes the draft into the multipart shape the
// backend expects: one JSON part named after the entity, each pending
// file under "files", the removal-id list as a JSON part when
// non-empty, and the trimmed video URL as a text part when present.
func (d *Draft) BuildSubmission(partKey string) (*Submission, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := writeJSONPart(w, partKey, d.dto()); err != nil {
		return nil, err
	}

	for _, f := range d.pending {
		part, err := w.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, fmt.Errorf("write file part: %w", err)
		}
	}

	if len(d.removed) > 0 {
		if err := writeJSONPart(w, "removedMediaIds", d.removed); err != nil {
			return nil, err
		}
	}

	if video := strings.TrimSpace(d.VideoURL); video != "" {
		if err := w.WriteField("videoUrl", video); err != nil {
			return nil, fmt.Errorf("write video field: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}
	return &Submission{ContentType: w.FormDataContentType(), body: buf.Bytes()}, nil
}

// dto picks the scalar payload for the draft kind.
func (d *Draft) dto() any {
	if d.kind == KindNews {
		return newsDTO{
			Title:         d.Title,
			Content:       d.Description,
			Visibility:    d.Visibility,
			ContentStatus: d.Status,
			PublishedAt:   d.PublishedAt,
		}
	}
	return models.ContentFields{
		Title:       d.Title,
		Description: d.Description,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Location:    d.Location,
		Address:     d.Address,
		Capacity:    d.Capacity,
		Visibility:  d.Visibility,
	}
}

// writeJSONPart emits a form-data part carrying JSON, the way a
// browser sends a Blob with an application/json content type.
func writeJSONPart(w *multipart.Writer, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s part: %w", name, err)
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q`, name))
	header.Set("Content-Type", "application/json")
	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create %s part: %w", name, err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("write %s part: %w", name, err)
	}
	return nil
}

package documents

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/singleflight"

	"legal-backend/internal/htmldoc"
	"legal-backend/internal/shared/storage/object"
	"legal-backend/internal/shared/telemetry"
	"legal-backend/internal/shared/util"
)

// Service contains business logic for stored documents.
type Service struct {
	Store object.ObjectStore
	Repo  DocumentsRepo
	Now   func() time.Time

	materialize singleflight.Group
}

// Download is a ready-to-serve file.
type Download struct {
	FileName    string
	ContentType string
	Body        io.ReadCloser
}

// NewService constructs a Service.
func NewService(store object.ObjectStore, repo DocumentsRepo) *Service {
	return &Service{Store: store, Repo: repo, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// Get returns a document owned by the user.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	if userID == "" || documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, documentID)
}

// List returns the user's documents, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Delete removes the document record. Stored files are left in place.
func (s *Service) Delete(ctx context.Context, userID, documentID string) error {
	if userID == "" || documentID == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, userID, documentID)
}

// Content returns the HTML view of a document. A stored HTML rendition wins;
// otherwise the document content is wrapped on the fly.
func (s *Service) Content(ctx context.Context, userID, documentID string) (string, error) {
	doc, err := s.Get(ctx, userID, documentID)
	if err != nil {
		return "", err
	}
	if doc.FilePath != "" && isHTMLPath(doc.FilePath) {
		data, err := object.ReadAll(ctx, s.Store, doc.FilePath)
		switch {
		case err == nil:
			return string(data), nil
		case !errors.Is(err, object.ErrNotFound):
			return "", eris.Wrapf(err, "read stored content for document %s", doc.ID)
		}
	}
	return renderHTML(doc), nil
}

// Download opens the stored file for a document, rendering and storing an
// HTML version first when the document has no file yet.
func (s *Service) Download(ctx context.Context, userID, documentID string) (Download, error) {
	doc, err := s.Get(ctx, userID, documentID)
	if err != nil {
		return Download{}, err
	}

	filePath, err := s.ensureFile(ctx, doc)
	if err != nil {
		return Download{}, err
	}

	body, err := s.Store.Open(ctx, filePath)
	if err != nil {
		return Download{}, eris.Wrapf(err, "open %s", filePath)
	}
	name := util.Slugify(doc.Title)
	if name == "" {
		name = "document"
	}
	return Download{
		FileName:    name + path.Ext(filePath),
		ContentType: object.ContentTypeFor(filePath),
		Body:        body,
	}, nil
}

func (s *Service) ensureFile(ctx context.Context, doc Document) (string, error) {
	if doc.FilePath != "" {
		ok, err := s.Store.Exists(ctx, doc.FilePath)
		if err != nil {
			return "", eris.Wrapf(err, "stat %s", doc.FilePath)
		}
		if ok {
			return doc.FilePath, nil
		}
	}

	// Concurrent downloads of the same document share one materialization.
	v, err, _ := s.materialize.Do(doc.ID, func() (any, error) {
		key := object.DocumentKey(doc.UserID, doc.Title, "html", s.now())
		if _, err := s.Store.Put(ctx, key, "text/html; charset=utf-8", strings.NewReader(renderHTML(doc))); err != nil {
			return "", eris.Wrapf(err, "store rendition for document %s", doc.ID)
		}
		if err := s.Repo.UpdateFilePath(ctx, doc.UserID, doc.ID, key); err != nil {
			return "", eris.Wrapf(err, "attach file path to document %s", doc.ID)
		}
		telemetry.Info("document.materialized", map[string]any{
			"document_id": doc.ID,
			"file_path":   key,
			"previous":    doc.FilePath,
		})
		return key, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func renderHTML(doc Document) string {
	if htmldoc.IsFullDocument(doc.Content) {
		return doc.Content
	}
	return htmldoc.Wrap(doc.Content, doc.Title)
}

func isHTMLPath(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".html", ".htm":
		return true
	}
	return false
}

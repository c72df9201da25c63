package services

import (
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"agencyportal/internal/domain"
	"agencyportal/internal/domain/models"
	"agencyportal/internal/repositories"
	"agencyportal/internal/utils"

	"github.com/google/uuid"
)

// DocumentService stores booking documents on local disk keyed by uuid and
// keeps their metadata rows. Agency visibility is a filtered subset.
type DocumentService struct {
	DocumentRepo repositories.DocumentRepository
	BookingSvc   BookingService
	UploadDir    string
	RequestID    string
}

func (s DocumentService) uploadDir() string {
	if strings.TrimSpace(s.UploadDir) != "" {
		return s.UploadDir
	}
	return "uploads"
}

// UploadInput carries the multipart metadata; the file body arrives as src.
type UploadInput struct {
	BookingID       int64
	DocumentType    string
	FileName        string
	ContentType     string
	Notes           string
	VisibleToAgency bool
}

// Upload writes the file under a fresh uuid key and inserts the metadata
// row. Agencies upload to their own bookings only, and their uploads are
// always agency-visible.
func (s DocumentService) Upload(p domain.Principal, in UploadInput, src io.Reader) (models.Document, error) {
	booking, err := s.BookingSvc.GetByID(p, in.BookingID)
	if err != nil {
		return models.Document{}, err
	}

	in.DocumentType = strings.TrimSpace(in.DocumentType)
	if in.DocumentType == "" {
		return models.Document{}, domain.ValidationError{Field: "document_type", Msg: "required"}
	}
	in.FileName = filepath.Base(strings.TrimSpace(in.FileName))
	if in.FileName == "" || in.FileName == "." {
		return models.Document{}, domain.ValidationError{Field: "file", Msg: "missing file name"}
	}
	if p.IsAgency() {
		in.VisibleToAgency = true
	}

	key := uuid.NewString() + strings.ToLower(filepath.Ext(in.FileName))
	dir := s.uploadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return models.Document{}, domain.InternalError{Err: err}
	}
	path := filepath.Join(dir, key)

	dst, err := os.Create(path)
	if err != nil {
		return models.Document{}, domain.InternalError{Err: err}
	}
	size, err := io.Copy(dst, src)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return models.Document{}, domain.InternalError{Err: err}
	}

	doc := models.Document{
		BookingID:       booking.ID,
		DocumentType:    in.DocumentType,
		FileName:        in.FileName,
		StorageKey:      key,
		ContentType:     in.ContentType,
		SizeBytes:       size,
		Notes:           strings.TrimSpace(in.Notes),
		VisibleToAgency: in.VisibleToAgency,
		UploadedBy:      p.UserID,
	}
	id, err := s.DocumentRepo.Create(doc)
	if err != nil {
		_ = os.Remove(path)
		return models.Document{}, domain.InternalError{Err: err}
	}
	doc.ID = id

	utils.LogEvent(s.RequestID, "document", "upload",
		"document stored booking="+itoa(booking.ID)+" key="+key)
	return doc, nil
}

// ListForBooking returns a booking's documents; agency callers get only
// the agency-visible subset.
func (s DocumentService) ListForBooking(p domain.Principal, bookingID int64) ([]models.Document, error) {
	if _, err := s.BookingSvc.GetByID(p, bookingID); err != nil {
		return nil, err
	}
	docs, err := s.DocumentRepo.ListByBooking(bookingID, p.IsAgency())
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return docs, nil
}

// Fetch resolves a document the caller may download and the on-disk path
// to serve it from.
func (s DocumentService) Fetch(p domain.Principal, id int64) (models.Document, string, error) {
	doc, err := s.get(id)
	if err != nil {
		return models.Document{}, "", err
	}
	// booking lookup doubles as the tenancy check
	if _, err := s.BookingSvc.GetByID(p, doc.BookingID); err != nil {
		return models.Document{}, "", domain.NotFoundError{Resource: "document"}
	}
	if p.IsAgency() && !doc.VisibleToAgency {
		return models.Document{}, "", domain.NotFoundError{Resource: "document"}
	}
	return doc, filepath.Join(s.uploadDir(), doc.StorageKey), nil
}

// Delete removes the metadata row and then the file, best effort.
func (s DocumentService) Delete(p domain.Principal, id int64) error {
	if !p.IsBackOffice() {
		return domain.AuthorizationError{Msg: "deleting documents requires a back-office role"}
	}
	doc, err := s.get(id)
	if err != nil {
		return err
	}
	deleted, err := s.DocumentRepo.Delete(id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !deleted {
		return domain.NotFoundError{Resource: "document"}
	}
	if doc.StorageKey != "" {
		_ = os.Remove(filepath.Join(s.uploadDir(), doc.StorageKey))
	}
	utils.LogEvent(s.RequestID, "document", "delete", "document deleted id="+itoa(id))
	return nil
}

func (s DocumentService) get(id int64) (models.Document, error) {
	if id <= 0 {
		return models.Document{}, domain.ValidationError{Field: "document_id", Msg: "invalid id"}
	}
	doc, err := s.DocumentRepo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Document{}, domain.NotFoundError{Resource: "document"}
	}
	if err != nil {
		return models.Document{}, domain.InternalError{Err: err}
	}
	return doc, nil
}

package handlers

import (
	"net/http"
	"strconv"

	"agencyportal/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/documents?booking_id=
func (h Handler) ListDocuments(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	bookingID, err := strconv.ParseInt(c.Query("booking_id"), 10, 64)
	if err != nil || bookingID <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_id", "booking_id query parameter is required")
		return
	}
	docs, err := h.documentSvc(c).ListForBooking(p, bookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// POST /api/documents (multipart: file, booking_id, document_type, notes?,
// visible_to_agency?)
func (h Handler) UploadDocument(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	bookingID, err := strconv.ParseInt(c.PostForm("booking_id"), 10, 64)
	if err != nil || bookingID <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_id", "booking_id form field is required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", "file is required")
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", "could not read file")
		return
	}
	defer src.Close()

	visible := c.PostForm("visible_to_agency") == "true" || c.PostForm("visible_to_agency") == "1"

	doc, err := h.documentSvc(c).Upload(p, services.UploadInput{
		BookingID:       bookingID,
		DocumentType:    c.PostForm("document_type"),
		FileName:        fileHeader.Filename,
		ContentType:     fileHeader.Header.Get("Content-Type"),
		Notes:           c.PostForm("notes"),
		VisibleToAgency: visible,
	}, src)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"document": doc})
}

// GET /api/documents/:id streams the file as an attachment.
func (h Handler) DownloadDocument(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	doc, path, err := h.documentSvc(c).Fetch(p, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.FileAttachment(path, doc.FileName)
}

// DELETE /api/documents/:id
func (h Handler) DeleteDocument(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.documentSvc(c).Delete(p, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

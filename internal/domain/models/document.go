package models

// Document is file metadata attached to a pre-booking. The file itself
// lives on disk under StorageKey.
type Document struct {
	ID              int64  `json:"id"`
	BookingID       int64  `json:"booking_id"`
	DocumentType    string `json:"document_type"`
	FileName        string `json:"file_name"`
	StorageKey      string `json:"-"`
	ContentType     string `json:"content_type,omitempty"`
	SizeBytes       int64  `json:"size_bytes"`
	Notes           string `json:"notes,omitempty"`
	VisibleToAgency bool   `json:"visible_to_agency"`
	UploadedBy      int64  `json:"uploaded_by,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
}

package entity

import "time"

// Document is a supporting file attached to a claim. The workflow never
// requires documents to exist before a transition.
type Document struct {
	ID          int64     `json:"id"`
	ClaimID     int64     `json:"claim_id"`
	FileName    string    `json:"file_name"`
	FilePath    string    `json:"file_path"`
	FileType    string    `json:"file_type"`
	FileSize    int64     `json:"file_size"`
	ContentType string    `json:"content_type"`
	Description string    `json:"description,omitempty"`
	IsVerified  bool      `json:"is_verified"`
	UploadDate  time.Time `json:"upload_date"`
}

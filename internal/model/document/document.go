package document

import (
	"time"
)

// FileRecord is the database row correlating an uploaded object with its
// business metadata. Table: arquivos.
type FileRecord struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Extension   string    `json:"extension"`
	URL         string    `json:"url"`
	StorageKey  string    `json:"s3Key"`
	Observation string    `json:"observation,omitempty"`
	ProgramID   uint64    `json:"program_id"`
	FileTypeID  uint64    `json:"file_type_id"`
	UserID      uint64    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Folder is a DB-backed folder definition. Table: pastas.
type Folder struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	DisplayOrder  int    `json:"display_order"`
	FolderGroupID uint64 `json:"folder_group_id,omitempty"`
}

// FileType describes the placement and validation rules of a document kind.
// Table: arquivos_tipo.
type FileType struct {
	ID                 uint64 `json:"id"`
	FolderID           uint64 `json:"folder_id"`
	Name               string `json:"name"`
	Abbreviation       string `json:"abbreviation"`
	Color              string `json:"color"`
	MaxSizeMB          int    `json:"max_size_mb"`
	Description        string `json:"description,omitempty"`
	AllowedFormat      string `json:"allowed_format"`
	RequiresValidation bool   `json:"requires_validation"`
	UploadDeadlineDays int    `json:"upload_deadline_days,omitempty"`
}

// FileEntry is a leaf of the virtual folder tree. ID is nil when the object
// exists in storage without a matching database row.
type FileEntry struct {
	ID         *uint64 `json:"id,omitempty"`
	Name       string  `json:"name"`
	StorageKey string  `json:"s3Key"`
}

// FolderNode is one level of the virtual tree derived from prefix listings.
type FolderNode struct {
	Name       string       `json:"name"`
	Subfolders []FolderNode `json:"subfolders"`
	Files      []FileEntry  `json:"files"`
}

// UploadedFile is the per-file success payload of a batch upload.
type UploadedFile struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	StorageKey string `json:"s3Key"`
}

// UploadFailure is the per-file failure payload of a batch upload.
type UploadFailure struct {
	ItemID string `json:"itemId"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// DeleteResult reports the two independent halves of a delete. Neither half
// is rolled back when the other fails.
type DeleteResult struct {
	StorageKey     string `json:"s3Key"`
	StorageDeleted bool   `json:"storageDeleted"`
	StorageMissing bool   `json:"storageMissing"`
	DBDeleted      bool   `json:"dbDeleted"`
	Message        string `json:"message"`
}

// ReconcileReport lists the two kinds of storage/DB divergence for a program.
type ReconcileReport struct {
	ProgramID     uint64   `json:"programId"`
	OrphanObjects []string `json:"orphanObjects"` // in storage, no DB row
	DanglingRows  []string `json:"danglingRows"`  // DB row, no object
}

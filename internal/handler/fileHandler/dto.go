package fileHandler

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// UploadForm carries the non-file fields of the multipart upload request.
type UploadForm struct {
	ProgramID  string `form:"programId"`
	UserID     string `form:"userId"`
	FileTypeID string `form:"fileTypeId"`
	FolderTree string `form:"folderTree"`
}

func (f UploadForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.ProgramID, validation.Required, is.Digit),
		validation.Field(&f.UserID, validation.Required, is.Digit),
		validation.Field(&f.FileTypeID, validation.Required, is.Digit),
		validation.Field(&f.FolderTree, validation.By(noParentTraversal)),
	)
}

// noParentTraversal rejects ".." segments in a caller-supplied folder tree.
// Legal folder names never contain them.
func noParentTraversal(value interface{}) error {
	s, _ := value.(string)
	for _, seg := range strings.Split(s, "/") {
		if strings.TrimSpace(seg) == ".." {
			return errors.New("must not contain parent directory segments")
		}
	}
	return nil
}

type CreateFoldersRequest struct {
	CompanyID uint64 `json:"companyId"`
	ProgramID uint64 `json:"programId"`
	UserID    uint64 `json:"userId"`
}

func (r CreateFoldersRequest) Validate() error {
	if r.CompanyID == 0 && r.ProgramID == 0 {
		return errors.New("either companyId or programId is required")
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
	)
}

type FoldersByProgramRequest struct {
	ProgramID uint64 `json:"programId"`
	UserID    uint64 `json:"userId"`
}

func (r FoldersByProgramRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProgramID, validation.Required),
		validation.Field(&r.UserID, validation.Required),
	)
}

type DeleteFileRequest struct {
	S3Key  string `json:"s3Key"`
	UserID uint64 `json:"userId"`
}

func (r DeleteFileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.S3Key, validation.Required),
		validation.Field(&r.UserID, validation.Required),
	)
}

type ReconcileRequest struct {
	ProgramID uint64 `json:"programId"`
}

func (r ReconcileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProgramID, validation.Required),
	)
}

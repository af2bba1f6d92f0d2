package fileService

import (
	"context"
	"io"

	"document-service/internal/MinIO"
	"document-service/internal/model/company"
	"document-service/internal/model/document"
	"document-service/internal/model/user"
	"document-service/internal/service/userService"
)

// ObjectStorage is the slice of the MinIO client the service depends on.
type ObjectStorage interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	CreateFolder(ctx context.Context, key string) error
	DeleteFile(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	ListLevel(ctx context.Context, prefix string) (*MinIO.Listing, error)
	ListAll(ctx context.Context, prefix string) ([]string, error)
	PublicURL(key string) string
}

type FileRepo interface {
	Create(ctx context.Context, file *document.FileRecord) error
	GetByStorageKey(ctx context.Context, key string) (*document.FileRecord, error)
	DeleteByStorageKey(ctx context.Context, key string) (bool, error)
	ListByProgram(ctx context.Context, programID uint64) ([]*document.FileRecord, error)
}

type CompanyRepo interface {
	GetCompanyByID(ctx context.Context, id uint64) (*company.Company, error)
	GetProgramByID(ctx context.Context, id uint64) (*company.Program, error)
	ListProgramsByCompany(ctx context.Context, companyID uint64) ([]*company.Program, error)
}

type FolderRepo interface {
	GetFolderByName(ctx context.Context, name string) (*document.Folder, error)
	GetFileTypeByID(ctx context.Context, id uint64) (*document.FileType, error)
	ListFileTypesByFolderName(ctx context.Context, folderName string) ([]*document.FileType, error)
	FolderNameOfFileType(ctx context.Context, fileTypeID uint64) (string, error)
}

type UserDirectory interface {
	GetUserWithPermissions(ctx context.Context, userID uint64) (*user.User, error)
	HasFolderPermission(u *user.User, folderName string, op userService.Operation) bool
	Restricted(folderName string) bool
	IsCustomer(u *user.User) bool
}

// TreeCache caches built folder trees per root prefix. A nil tree on Get
// means a miss.
type TreeCache interface {
	Get(ctx context.Context, rootPrefix string) (*document.FolderNode, error)
	Set(ctx context.Context, rootPrefix string, node *document.FolderNode) error
	Invalidate(ctx context.Context, rootPrefix string) error
}

package fileService

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"document-service/internal/model/company"
	"document-service/internal/model/document"
	"document-service/internal/model/user"
	"document-service/internal/service/userService"
	"document-service/internal/storagekey"
)

type FileService struct {
	fileRepo    FileRepo
	companyRepo CompanyRepo
	folderRepo  FolderRepo
	users       UserDirectory
	storage     ObjectStorage
	cache       TreeCache
	templates   FolderTemplates
}

func New(
	fileRepo FileRepo,
	companyRepo CompanyRepo,
	folderRepo FolderRepo,
	users UserDirectory,
	storage ObjectStorage,
	cache TreeCache,
	templates FolderTemplates,
) *FileService {
	return &FileService{
		fileRepo:    fileRepo,
		companyRepo: companyRepo,
		folderRepo:  folderRepo,
		users:       users,
		storage:     storage,
		cache:       cache,
		templates:   templates,
	}
}

// UploadItem is one file of a batch upload request.
type UploadItem struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UploadParams are the request fields shared by every file of the batch.
type UploadParams struct {
	ProgramID  uint64
	UserID     uint64
	FileTypeID uint64
	FolderTree string
}

// BatchResult aggregates the per-file outcomes of a batch upload. A batch
// with failures is still a batch, not an error.
type BatchResult struct {
	Uploaded []document.UploadedFile
	Failures []document.UploadFailure
}

// UploadFiles validates and stores a batch of files concurrently. Resolution
// failures (program, company, file type, user) abort the whole batch since
// every file shares them; per-file failures are isolated and reported.
func (s *FileService) UploadFiles(ctx context.Context, params UploadParams, items []UploadItem) (*BatchResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no files provided", document.ErrValidation)
	}

	usr, err := s.users.GetUserWithPermissions(ctx, params.UserID)
	if err != nil {
		return nil, err
	}

	program, comp, err := s.resolveProgram(ctx, params.ProgramID)
	if err != nil {
		return nil, err
	}

	fileType, err := s.folderRepo.GetFileTypeByID(ctx, params.FileTypeID)
	if err != nil {
		return nil, fmt.Errorf("%w: file type lookup: %v", document.ErrUpstream, err)
	}
	if fileType == nil {
		return nil, fmt.Errorf("%w: file type %d", document.ErrNotFound, params.FileTypeID)
	}

	folderTree := strings.TrimSpace(params.FolderTree)
	if folderTree == "" {
		// Older clients send no tree; place the file by its type's folder.
		folderTree, err = s.folderRepo.FolderNameOfFileType(ctx, params.FileTypeID)
		if err != nil {
			return nil, fmt.Errorf("%w: folder lookup: %v", document.ErrUpstream, err)
		}
	}

	leaf := storagekey.BaseName(folderTree)
	if s.users.IsCustomer(usr) && !s.users.HasFolderPermission(usr, leaf, userService.OpWrite) {
		return nil, fmt.Errorf("%w: no write access to folder %q", document.ErrForbidden, leaf)
	}

	result := &BatchResult{}
	outcomes := make([]uploadOutcome, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item UploadItem) {
			defer wg.Done()
			outcomes[i] = s.uploadOne(ctx, comp, program, fileType, folderTree, params, item)
		}(i, item)
	}
	wg.Wait()

	for _, out := range outcomes {
		if out.failure != nil {
			result.Failures = append(result.Failures, *out.failure)
		} else {
			result.Uploaded = append(result.Uploaded, *out.uploaded)
		}
	}

	if len(result.Uploaded) > 0 {
		s.invalidateTree(ctx, storagekey.ProgramPrefix(comp.CNPJ, program.Name))
	}
	return result, nil
}

type uploadOutcome struct {
	uploaded *document.UploadedFile
	failure  *document.UploadFailure
}

func (s *FileService) uploadOne(
	ctx context.Context,
	comp *company.Company,
	program *company.Program,
	fileType *document.FileType,
	folderTree string,
	params UploadParams,
	item UploadItem,
) uploadOutcome {
	fail := func(reason string) uploadOutcome {
		return uploadOutcome{failure: &document.UploadFailure{
			ItemID: uuid.NewString(),
			Name:   item.Name,
			Reason: reason,
		}}
	}

	if err := validateItem(item, fileType); err != nil {
		return fail(err.Error())
	}

	key := storagekey.Derive(comp.CNPJ, program.Name, folderTree, item.Name)
	if err := s.storage.UploadFile(ctx, key, item.Reader, item.Size, item.ContentType); err != nil {
		return fail(fmt.Sprintf("upload to storage failed: %v", err))
	}

	record := &document.FileRecord{
		Name:       item.Name,
		Extension:  document.ExtensionOf(item.Name),
		URL:        s.storage.PublicURL(key),
		StorageKey: key,
		ProgramID:  params.ProgramID,
		FileTypeID: params.FileTypeID,
		UserID:     params.UserID,
		CreatedAt:  time.Now(),
	}
	if err := s.fileRepo.Create(ctx, record); err != nil {
		// The object stays behind; Reconcile surfaces it.
		return fail(fmt.Sprintf("saving file record failed: %v", err))
	}

	return uploadOutcome{uploaded: &document.UploadedFile{
		Name:       record.Name,
		URL:        record.URL,
		StorageKey: record.StorageKey,
	}}
}

func validateItem(item UploadItem, fileType *document.FileType) error {
	if item.Size <= 0 {
		return fmt.Errorf("empty file %q", item.Name)
	}
	if !document.ExtensionAllowed(item.Name) {
		return fmt.Errorf("extension %q is not allowed", document.ExtensionOf(item.Name))
	}
	if !formatPermitted(fileType.AllowedFormat, document.ExtensionOf(item.Name)) {
		return fmt.Errorf("file type %q only accepts %s", fileType.Name, fileType.AllowedFormat)
	}
	if fileType.MaxSizeMB > 0 && item.Size > int64(fileType.MaxSizeMB)*1024*1024 {
		return fmt.Errorf("file exceeds the %d MB limit", fileType.MaxSizeMB)
	}
	return nil
}

func formatPermitted(allowedFormat, ext string) bool {
	if allowedFormat == "" {
		return true
	}
	for _, f := range strings.FieldsFunc(allowedFormat, func(r rune) bool {
		return r == ',' || r == ';' || r == ' '
	}) {
		if strings.EqualFold(strings.TrimPrefix(f, "."), ext) {
			return true
		}
	}
	return false
}

// CreateFolders provisions the standard category/subfolder placeholders for
// every program of a company, or for a single program. Re-running overwrites
// the same zero-byte objects; the operation is idempotent.
func (s *FileService) CreateFolders(ctx context.Context, companyID, programID uint64) ([]string, error) {
	programs, cnpjByCompany, err := s.resolvePrograms(ctx, companyID, programID)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, program := range programs {
		prefix := storagekey.ProgramPrefix(cnpjByCompany[program.CompanyID], program.Name)
		for _, category := range s.templates.Categories {
			for _, sub := range s.templates.SubfoldersFor(category) {
				key := prefix + category + "/" + sub + "/"
				if err := s.storage.CreateFolder(ctx, key); err != nil {
					return nil, fmt.Errorf("%w: creating folder %q: %v", document.ErrUpstream, key, err)
				}
			}
		}
		s.invalidateTree(ctx, prefix)
		names = append(names, program.Name)
	}
	return names, nil
}

func (s *FileService) resolvePrograms(ctx context.Context, companyID, programID uint64) ([]*company.Program, map[uint64]string, error) {
	if programID != 0 {
		program, comp, err := s.resolveProgram(ctx, programID)
		if err != nil {
			return nil, nil, err
		}
		return []*company.Program{program}, map[uint64]string{comp.ID: comp.CNPJ}, nil
	}

	comp, err := s.companyRepo.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: company lookup: %v", document.ErrUpstream, err)
	}
	if comp == nil {
		return nil, nil, fmt.Errorf("%w: company %d", document.ErrNotFound, companyID)
	}
	programs, err := s.companyRepo.ListProgramsByCompany(ctx, companyID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: listing programs: %v", document.ErrUpstream, err)
	}
	return programs, map[uint64]string{comp.ID: comp.CNPJ}, nil
}

// ListAllFolders builds the program's folder tree and returns its
// category-level nodes, filtered by the requesting user's read permissions.
func (s *FileService) ListAllFolders(ctx context.Context, programID, userID uint64) ([]document.FolderNode, error) {
	usr, err := s.users.GetUserWithPermissions(ctx, userID)
	if err != nil {
		return nil, err
	}

	program, comp, err := s.resolveProgram(ctx, programID)
	if err != nil {
		return nil, err
	}

	prefix := storagekey.ProgramPrefix(comp.CNPJ, program.Name)
	tree, err := s.cachedTree(ctx, prefix)
	if err != nil {
		return nil, err
	}

	subfolders := tree.Subfolders
	if s.users.IsCustomer(usr) {
		subfolders = s.filterByRead(usr, subfolders)
	}
	return subfolders, nil
}

// filterByRead drops restricted folders the user cannot read. Category-level
// and other unmapped folders pass through; only leaf folders are named in the
// permission table.
func (s *FileService) filterByRead(usr *user.User, nodes []document.FolderNode) []document.FolderNode {
	filtered := make([]document.FolderNode, 0, len(nodes))
	for _, node := range nodes {
		if s.users.Restricted(node.Name) && !s.users.HasFolderPermission(usr, node.Name, userService.OpRead) {
			continue
		}
		node.Subfolders = s.filterByRead(usr, node.Subfolders)
		filtered = append(filtered, node)
	}
	return filtered
}

// DeleteByKey removes a document's database row and stored object as two
// independent best-effort steps; the result reports which of the two
// happened. A missing database row is reported, not an error.
func (s *FileService) DeleteByKey(ctx context.Context, storageKey string, userID uint64) (*document.DeleteResult, error) {
	usr, err := s.users.GetUserWithPermissions(ctx, userID)
	if err != nil {
		return nil, err
	}
	folder := storagekey.FolderName(storageKey)
	if s.users.IsCustomer(usr) && !s.users.HasFolderPermission(usr, folder, userService.OpWrite) {
		return nil, fmt.Errorf("%w: no write access to folder %q", document.ErrForbidden, folder)
	}

	result := &document.DeleteResult{StorageKey: storageKey}

	dbDeleted, dbErr := s.fileRepo.DeleteByStorageKey(ctx, storageKey)
	result.DBDeleted = dbErr == nil && dbDeleted

	exists, statErr := s.storage.Exists(ctx, storageKey)
	switch {
	case statErr != nil:
		// fall through; removal below reports its own failure
	case !exists:
		result.StorageMissing = true
	}
	var storageErr error
	if statErr != nil || exists {
		if storageErr = s.storage.DeleteFile(ctx, storageKey); storageErr == nil && !result.StorageMissing {
			result.StorageDeleted = true
		}
	}

	switch {
	case dbErr != nil && storageErr != nil:
		return nil, fmt.Errorf("%w: delete failed in database (%v) and storage (%v)", document.ErrUpstream, dbErr, storageErr)
	case dbErr != nil:
		result.Message = fmt.Sprintf("object deleted from storage, database delete failed: %v", dbErr)
	case storageErr != nil:
		result.Message = fmt.Sprintf("database record deleted, storage delete failed: %v", storageErr)
	case !result.DBDeleted && result.StorageMissing:
		result.Message = "no database record or stored object found for the key"
	case !result.DBDeleted:
		result.Message = "object deleted from storage; no database record existed"
	case result.StorageMissing:
		result.Message = "database record deleted; no stored object existed"
	default:
		result.Message = "file deleted"
	}

	if idx := strings.Index(storageKey, "/"); idx > 0 {
		if second := strings.Index(storageKey[idx+1:], "/"); second > 0 {
			s.invalidateTree(ctx, storageKey[:idx+1+second]+"/")
		}
	}
	return result, nil
}

// FileTypesByFolder lists the file types configured under a folder name.
func (s *FileService) FileTypesByFolder(ctx context.Context, folderName string) ([]*document.FileType, error) {
	folder, err := s.folderRepo.GetFolderByName(ctx, folderName)
	if err != nil {
		return nil, fmt.Errorf("%w: folder lookup: %v", document.ErrUpstream, err)
	}
	if folder == nil {
		return nil, fmt.Errorf("%w: folder %q", document.ErrNotFound, folderName)
	}

	types, err := s.folderRepo.ListFileTypesByFolderName(ctx, folderName)
	if err != nil {
		return nil, fmt.Errorf("%w: file type lookup: %v", document.ErrUpstream, err)
	}
	return types, nil
}

func (s *FileService) resolveProgram(ctx context.Context, programID uint64) (*company.Program, *company.Company, error) {
	program, err := s.companyRepo.GetProgramByID(ctx, programID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: program lookup: %v", document.ErrUpstream, err)
	}
	if program == nil {
		return nil, nil, fmt.Errorf("%w: program %d", document.ErrNotFound, programID)
	}
	comp, err := s.companyRepo.GetCompanyByID(ctx, program.CompanyID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: company lookup: %v", document.ErrUpstream, err)
	}
	if comp == nil {
		return nil, nil, fmt.Errorf("%w: company %d", document.ErrNotFound, program.CompanyID)
	}
	return program, comp, nil
}

func (s *FileService) invalidateTree(ctx context.Context, prefix string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx, prefix)
}

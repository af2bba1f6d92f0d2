package fileService_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"document-service/internal/MinIO"
	"document-service/internal/model/company"
	"document-service/internal/model/document"
	"document-service/internal/model/user"
	"document-service/internal/service/userService"
)

// fakeStorage is an in-memory bucket with S3-style delimiter listing.
type fakeStorage struct {
	mu       sync.Mutex
	objects  map[string][]byte
	failPuts map[string]error
	listErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		objects:  make(map[string][]byte),
		failPuts: make(map[string]error),
	}
}

func (s *fakeStorage) UploadFile(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failPuts[key]; ok {
		return err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[key] = data
	return nil
}

func (s *fakeStorage) CreateFolder(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = nil
	return nil
}

func (s *fakeStorage) DeleteFile(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *fakeStorage) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok, nil
}

func (s *fakeStorage) ListLevel(_ context.Context, prefix string) (*MinIO.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}

	listing := &MinIO.Listing{}
	seen := map[string]bool{}
	keys := s.sortedKeys()
	for _, key := range keys {
		if !strings.HasPrefix(key, prefix) || key == prefix {
			continue
		}
		rest := strings.TrimPrefix(key, prefix)
		if idx := strings.Index(rest, "/"); idx >= 0 {
			sub := prefix + rest[:idx+1]
			if !seen[sub] {
				seen[sub] = true
				listing.Prefixes = append(listing.Prefixes, sub)
			}
		} else {
			listing.Keys = append(listing.Keys, key)
		}
	}
	return listing, nil
}

func (s *fakeStorage) ListAll(_ context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var keys []string
	for _, key := range s.sortedKeys() {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (s *fakeStorage) PublicURL(key string) string {
	return "https://bucket.s3.sa-east-1.amazonaws.com/" + key
}

func (s *fakeStorage) sortedKeys() []string {
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *fakeStorage) allKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedKeys()
}

func (s *fakeStorage) put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
}

// fakeFileRepo stores file records in memory, keyed by storage key.
type fakeFileRepo struct {
	mu         sync.Mutex
	records    map[string]*document.FileRecord
	nextID     uint64
	createErrs map[string]error
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{
		records:    make(map[string]*document.FileRecord),
		nextID:     1,
		createErrs: make(map[string]error),
	}
}

func (r *fakeFileRepo) Create(_ context.Context, file *document.FileRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.createErrs[file.StorageKey]; ok {
		return err
	}
	file.ID = r.nextID
	r.nextID++
	clone := *file
	r.records[file.StorageKey] = &clone
	return nil
}

func (r *fakeFileRepo) GetByStorageKey(_ context.Context, key string) (*document.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.records[key]; ok {
		clone := *rec
		return &clone, nil
	}
	return nil, nil
}

func (r *fakeFileRepo) DeleteByStorageKey(_ context.Context, key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[key]; !ok {
		return false, nil
	}
	delete(r.records, key)
	return true, nil
}

func (r *fakeFileRepo) ListByProgram(_ context.Context, programID uint64) ([]*document.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*document.FileRecord
	for _, rec := range r.records {
		if rec.ProgramID == programID {
			clone := *rec
			out = append(out, &clone)
		}
	}
	return out, nil
}

// fakeCompanyRepo serves companies and programs from maps.
type fakeCompanyRepo struct {
	companies map[uint64]*company.Company
	programs  map[uint64]*company.Program
}

func (r *fakeCompanyRepo) GetCompanyByID(_ context.Context, id uint64) (*company.Company, error) {
	return r.companies[id], nil
}

func (r *fakeCompanyRepo) GetProgramByID(_ context.Context, id uint64) (*company.Program, error) {
	return r.programs[id], nil
}

func (r *fakeCompanyRepo) ListProgramsByCompany(_ context.Context, companyID uint64) ([]*company.Program, error) {
	var out []*company.Program
	for _, p := range r.programs {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeFolderRepo serves file types from a map.
type fakeFolderRepo struct {
	fileTypes     map[uint64]*document.FileType
	folderNames   map[uint64]string
	typesByFolder map[string][]*document.FileType
	folders       map[string]*document.Folder
}

func (r *fakeFolderRepo) GetFolderByName(_ context.Context, name string) (*document.Folder, error) {
	return r.folders[name], nil
}

func (r *fakeFolderRepo) GetFileTypeByID(_ context.Context, id uint64) (*document.FileType, error) {
	return r.fileTypes[id], nil
}

func (r *fakeFolderRepo) ListFileTypesByFolderName(_ context.Context, name string) ([]*document.FileType, error) {
	return r.typesByFolder[name], nil
}

func (r *fakeFolderRepo) FolderNameOfFileType(_ context.Context, id uint64) (string, error) {
	return r.folderNames[id], nil
}

// fakeUsers serves users from a map and delegates authorization decisions to
// the real permission table logic.
type fakeUsers struct {
	authz *userService.UserService
	users map[uint64]*user.User
}

func newFakeUsers(users map[uint64]*user.User) *fakeUsers {
	return &fakeUsers{
		authz: userService.New("", userService.DefaultFolderPermissions),
		users: users,
	}
}

func (f *fakeUsers) GetUserWithPermissions(_ context.Context, id uint64) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errors.New("user not found in fake directory")
}

func (f *fakeUsers) HasFolderPermission(u *user.User, folder string, op userService.Operation) bool {
	return f.authz.HasFolderPermission(u, folder, op)
}

func (f *fakeUsers) Restricted(folder string) bool { return f.authz.Restricted(folder) }

func (f *fakeUsers) IsCustomer(u *user.User) bool { return f.authz.IsCustomer(u) }

func fileOf(content string) io.Reader { return bytes.NewReader([]byte(content)) }

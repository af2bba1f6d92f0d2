package userService

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"document-service/internal/model/document"
	"document-service/internal/model/user"
)

// UserService reaches the external auth service for user/group data and
// answers folder-permission questions against an injected permission table.
type UserService struct {
	client      *http.Client
	baseURL     string
	permissions PermissionTable
}

func New(baseURL string, permissions PermissionTable) *UserService {
	return &UserService{
		client:      &http.Client{Timeout: 10 * time.Second},
		baseURL:     baseURL,
		permissions: permissions,
	}
}

// GetUserWithPermissions fetches a user from GET {base}/users/{id}. Only the
// group ids matter to the authorizer; the rest is passed through for display.
func (s *UserService) GetUserWithPermissions(ctx context.Context, userID uint64) (*user.User, error) {
	url := fmt.Sprintf("%s/users/%d", s.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: auth service request: %v", document.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: user %d", document.ErrNotFound, userID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: auth service returned %d", document.ErrUpstream, resp.StatusCode)
	}

	var u user.User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("%w: decoding auth service response: %v", document.ErrUpstream, err)
	}
	return &u, nil
}

// HasFolderPermission decides access by intersecting the user's groups with
// the folder's required groups. Unknown folders and unknown operations are
// denied.
func (s *UserService) HasFolderPermission(u *user.User, folderName string, op Operation) bool {
	folderPerms, ok := s.permissions[folderName]
	if !ok {
		return false
	}

	var required []int
	switch op {
	case OpRead:
		required = folderPerms.Read
	case OpWrite:
		required = folderPerms.Write
	}
	if len(required) == 0 {
		return false
	}

	for _, g := range u.Groups {
		for _, id := range required {
			if g.ID == id {
				return true
			}
		}
	}
	return false
}

// Restricted reports whether a folder name is governed by the permission
// table at all. Unmapped folders carry no per-group restriction.
func (s *UserService) Restricted(folderName string) bool {
	_, ok := s.permissions[folderName]
	return ok
}

// IsCustomer reports whether the user belongs to any customer group.
// Customer group ids live in [20, 30).
func (s *UserService) IsCustomer(u *user.User) bool {
	for _, g := range u.Groups {
		if g.ID >= 20 && g.ID < 30 {
			return true
		}
	}
	return false
}

package user

// User mirrors the payload of the external auth service's GET /users/{id}.
type User struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	IsActive bool    `json:"isActive"`
	Groups   []Group `json:"groups"`
}

type Group struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// GroupIDs collects the ids of all groups the user belongs to.
func (u *User) GroupIDs() []int {
	ids := make([]int, 0, len(u.Groups))
	for _, g := range u.Groups {
		ids = append(ids, g.ID)
	}
	return ids
}

package company

import "time"

// Company as stored in the empresas table. CNPJ keeps its punctuation in the
// database and is normalized only when building storage keys.
type Company struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CNPJ      string    `json:"cnpj"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Program as stored in the programas table.
type Program struct {
	ID        uint64 `json:"id"`
	Year      int    `json:"year"`
	Name      string `json:"name"`
	CompanyID uint64 `json:"company_id"`
}

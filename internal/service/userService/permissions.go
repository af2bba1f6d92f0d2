package userService

// Operation is the kind of folder access being requested.
type Operation string

const (
	OpRead  Operation = "read"
	OpWrite Operation = "write"
)

// FolderPermissions lists the auth-service group ids allowed each operation
// on a folder.
type FolderPermissions struct {
	Read  []int
	Write []int
}

// PermissionTable maps folder names to their access groups. Folders absent
// from the table are denied for every group.
type PermissionTable map[string]FolderPermissions

// Group ids: 20 Cliente-All, 21 Cliente-Contabilidade, 22 Cliente-RH,
// 23 Cliente-Técnico.
var DefaultFolderPermissions = PermissionTable{
	"Documentação Técnica": {Read: []int{20, 23}, Write: []int{20, 23}},
	"Imagens":              {Read: []int{20, 23}, Write: []int{20, 23}},
	"Anexo FORMP&D":        {Read: []int{20, 23}, Write: []int{20, 23}},
	"Arquivado":            {Read: []int{20, 23}, Write: []int{20, 23}},
	"RH":                   {Read: []int{20, 22}, Write: []int{20, 22}},
	"Timesheet":            {Read: []int{20, 21, 23}, Write: []int{20, 23}},
	"Notas Fiscais":        {Read: []int{20, 21}, Write: []int{20, 21}},
	"Controles Internos":   {Read: []int{20, 21}, Write: []int{20, 21}},
	"Valoração":            {Read: []int{20, 21}, Write: []int{20, 21}},
	"FORMP&D":              {Read: []int{20, 23}, Write: []int{20, 23}},
	"Dossiê":               {Read: []int{20, 23}, Write: []int{20, 23}},
	"Relatório Gerencial":  {Read: []int{20, 23}, Write: []int{20, 23}},
	"Parecer MCTI":         {Read: []int{20, 23}, Write: []int{20, 23}},
}

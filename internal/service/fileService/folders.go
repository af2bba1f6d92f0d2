package fileService

// FolderTemplates is the ordered set of category folders provisioned for
// every program, and the subfolders each category starts with.
type FolderTemplates struct {
	Categories []string
	Subfolders map[string][]string
}

// DefaultFolderTemplates mirrors the standard document structure of an
// incentive program.
var DefaultFolderTemplates = FolderTemplates{
	Categories: []string{"CONTÁBIL", "TÉCNICO", "ENTREGÁVEL"},
	Subfolders: map[string][]string{
		"CONTÁBIL": {
			"Controles internos",
			"Notas Fiscais",
			"RH",
			"Timesheet",
			"Valoração",
		},
		"TÉCNICO": {
			"Anexo FORMP&D",
			"Arquivado",
			"Documentação Técnica",
			"Imagens",
		},
		"ENTREGÁVEL": {
			"Dossiê",
			"FORMP&D",
			"Parecer MCTI",
			"Relatório Gerencial",
		},
	},
}

// SubfoldersFor returns the provisioning list for a category, in order.
// Unknown categories have no subfolders; that is not an error.
func (t FolderTemplates) SubfoldersFor(category string) []string {
	return t.Subfolders[category]
}

package fileService_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"document-service/internal/service/fileService"
)

func TestFolderTemplates(t *testing.T) {
	tmpl := fileService.DefaultFolderTemplates

	t.Run("Known categories in order", func(t *testing.T) {
		assert.Equal(t, []string{"CONTÁBIL", "TÉCNICO", "ENTREGÁVEL"}, tmpl.Categories)
		assert.Equal(t,
			[]string{"Controles internos", "Notas Fiscais", "RH", "Timesheet", "Valoração"},
			tmpl.SubfoldersFor("CONTÁBIL"))
		assert.Equal(t,
			[]string{"Anexo FORMP&D", "Arquivado", "Documentação Técnica", "Imagens"},
			tmpl.SubfoldersFor("TÉCNICO"))
		assert.Equal(t,
			[]string{"Dossiê", "FORMP&D", "Parecer MCTI", "Relatório Gerencial"},
			tmpl.SubfoldersFor("ENTREGÁVEL"))
	})

	t.Run("Unknown category has no subfolders", func(t *testing.T) {
		assert.Empty(t, tmpl.SubfoldersFor("JURÍDICO"))
	})
}

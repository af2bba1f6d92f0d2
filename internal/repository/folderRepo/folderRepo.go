package folderRepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"document-service/internal/model/document"
)

type FolderRepository struct {
	pool *pgxpool.Pool
}

func New(db *pgxpool.Pool) *FolderRepository {
	return &FolderRepository{pool: db}
}

func (r *FolderRepository) GetFolderByName(ctx context.Context, name string) (*document.Folder, error) {
	var f document.Folder
	err := r.pool.QueryRow(ctx,
		`SELECT id_pasta, nome_pasta, COALESCE(descricao_pasta, ''), COALESCE(ordem_visualizacao, 0),
		        COALESCE(pasta_grupo_id, 0)
		   FROM pastas
		  WHERE nome_pasta = $1 AND deleted_at IS NULL`, name).
		Scan(&f.ID, &f.Name, &f.Description, &f.DisplayOrder, &f.FolderGroupID)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FolderRepository) GetFileTypeByID(ctx context.Context, id uint64) (*document.FileType, error) {
	return r.scanFileType(r.pool.QueryRow(ctx, selectFileType+` WHERE id_arquivo_tipo = $1 AND deleted_at IS NULL`, id))
}

// ListFileTypesByFolderName returns the file types configured under the named
// folder, in display order of creation.
func (r *FolderRepository) ListFileTypesByFolderName(ctx context.Context, folderName string) ([]*document.FileType, error) {
	rows, err := r.pool.Query(ctx,
		selectFileType+`
		  JOIN pastas p ON p.id_pasta = t.pasta_id
		 WHERE p.nome_pasta = $1 AND t.deleted_at IS NULL AND p.deleted_at IS NULL
		 ORDER BY t.id_arquivo_tipo`, folderName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []*document.FileType
	for rows.Next() {
		var t document.FileType
		if err := rows.Scan(
			&t.ID, &t.FolderID, &t.Name, &t.Abbreviation, &t.Color,
			&t.MaxSizeMB, &t.Description, &t.AllowedFormat,
			&t.RequiresValidation, &t.UploadDeadlineDays,
		); err != nil {
			return nil, err
		}
		types = append(types, &t)
	}
	return types, rows.Err()
}

// FolderNameOfFileType resolves the name of the folder a file type belongs to.
func (r *FolderRepository) FolderNameOfFileType(ctx context.Context, fileTypeID uint64) (string, error) {
	var name string
	err := r.pool.QueryRow(ctx,
		`SELECT p.nome_pasta
		   FROM arquivos_tipo t
		   JOIN pastas p ON p.id_pasta = t.pasta_id
		  WHERE t.id_arquivo_tipo = $1`, fileTypeID).
		Scan(&name)

	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return name, err
}

const selectFileType = `SELECT t.id_arquivo_tipo, t.pasta_id, t.arquivo_tipo_nome, t.arquivo_tipo_sigla,
       t.arquivo_tipo_cor, COALESCE(t.tamanho_maximo_mb, 5), COALESCE(t.descricao_arquivo, ''),
       t.formato_permitido, t.requer_validacao, COALESCE(t.prazo_upload_dias, 0)
  FROM arquivos_tipo t`

func (r *FolderRepository) scanFileType(row pgx.Row) (*document.FileType, error) {
	var t document.FileType
	err := row.Scan(
		&t.ID, &t.FolderID, &t.Name, &t.Abbreviation, &t.Color,
		&t.MaxSizeMB, &t.Description, &t.AllowedFormat,
		&t.RequiresValidation, &t.UploadDeadlineDays,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

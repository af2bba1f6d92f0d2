package fileRepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"document-service/internal/model/document"
)

type FileRepository struct {
	pool *pgxpool.Pool
}

func New(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{pool: db}
}

func (r *FileRepository) Create(ctx context.Context, file *document.FileRecord) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO arquivos (nome_arquivo, extensao_arquivo, url, s3_key, observacao_arquivo,
		                       programa_id, arquivo_tipo_id, user_id, criado_em)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id_arquivo`,
		file.Name, file.Extension, file.URL, file.StorageKey, file.Observation,
		file.ProgramID, file.FileTypeID, file.UserID, file.CreatedAt).
		Scan(&file.ID)
}

func (r *FileRepository) GetByID(ctx context.Context, id uint64) (*document.FileRecord, error) {
	return r.scanOne(r.pool.QueryRow(ctx, selectFile+` WHERE id_arquivo = $1`, id))
}

func (r *FileRepository) GetByStorageKey(ctx context.Context, key string) (*document.FileRecord, error) {
	return r.scanOne(r.pool.QueryRow(ctx, selectFile+` WHERE s3_key = $1`, key))
}

func (r *FileRepository) DeleteByStorageKey(ctx context.Context, key string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM arquivos WHERE s3_key = $1`, key)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *FileRepository) ListByProgram(ctx context.Context, programID uint64) ([]*document.FileRecord, error) {
	rows, err := r.pool.Query(ctx, selectFile+` WHERE programa_id = $1`, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*document.FileRecord
	for rows.Next() {
		var f document.FileRecord
		if err := rows.Scan(
			&f.ID, &f.Name, &f.Extension, &f.URL, &f.StorageKey, &f.Observation,
			&f.ProgramID, &f.FileTypeID, &f.UserID, &f.CreatedAt,
		); err != nil {
			return nil, err
		}
		files = append(files, &f)
	}
	return files, rows.Err()
}

const selectFile = `SELECT id_arquivo, nome_arquivo, extensao_arquivo, url, s3_key,
       COALESCE(observacao_arquivo, ''), programa_id, arquivo_tipo_id, user_id, criado_em
  FROM arquivos`

func (r *FileRepository) scanOne(row pgx.Row) (*document.FileRecord, error) {
	var f document.FileRecord
	err := row.Scan(
		&f.ID, &f.Name, &f.Extension, &f.URL, &f.StorageKey, &f.Observation,
		&f.ProgramID, &f.FileTypeID, &f.UserID, &f.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

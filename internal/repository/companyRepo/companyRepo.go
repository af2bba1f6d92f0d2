package companyRepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"document-service/internal/model/company"
)

type CompanyRepository struct {
	pool *pgxpool.Pool
}

func New(db *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: db}
}

func (r *CompanyRepository) GetCompanyByID(ctx context.Context, id uint64) (*company.Company, error) {
	var c company.Company
	err := r.pool.QueryRow(ctx,
		`SELECT id_empresa, nome_empresa, cnpj_empresa, atualizado_em
		   FROM empresas WHERE id_empresa = $1`, id).
		Scan(&c.ID, &c.Name, &c.CNPJ, &c.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepository) GetProgramByID(ctx context.Context, id uint64) (*company.Program, error) {
	var p company.Program
	err := r.pool.QueryRow(ctx,
		`SELECT id_programa, ano_base, nome_programa, empresa_id
		   FROM programas WHERE id_programa = $1`, id).
		Scan(&p.ID, &p.Year, &p.Name, &p.CompanyID)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CompanyRepository) ListProgramsByCompany(ctx context.Context, companyID uint64) ([]*company.Program, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id_programa, ano_base, nome_programa, empresa_id
		   FROM programas WHERE empresa_id = $1
		  ORDER BY id_programa`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []*company.Program
	for rows.Next() {
		var p company.Program
		if err := rows.Scan(&p.ID, &p.Year, &p.Name, &p.CompanyID); err != nil {
			return nil, err
		}
		programs = append(programs, &p)
	}
	return programs, rows.Err()
}

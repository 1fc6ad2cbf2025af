package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"trackhub/internal/entities"
	apperrors "trackhub/pkg/errors"
)

// DictionaryRepositoryInterface serves the fixed reference tables:
// equipment types, equipment statuses and intervention outcomes. They
// share one shape, so one repository parametrized by table name
// covers all three.
type DictionaryRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entities.Dictionary, error)
	FindByID(ctx context.Context, id uint64) (*entities.Dictionary, error)
}

type dictionaryRepository struct {
	storage *pgxpool.Pool
	table   string
}

func NewEquipmentTypeRepository(storage *pgxpool.Pool) DictionaryRepositoryInterface {
	return &dictionaryRepository{storage: storage, table: "equipment_types"}
}

func NewEquipmentStatusRepository(storage *pgxpool.Pool) DictionaryRepositoryInterface {
	return &dictionaryRepository{storage: storage, table: "equipment_statuses"}
}

func NewInterventionOutcomeRepository(storage *pgxpool.Pool) DictionaryRepositoryInterface {
	return &dictionaryRepository{storage: storage, table: "intervention_outcomes"}
}

func (r *dictionaryRepository) GetAll(ctx context.Context) ([]entities.Dictionary, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select("id", "description").From(r.table).OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building %s query: %w", r.table, err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", r.table, err)
	}
	defer rows.Close()

	list := make([]entities.Dictionary, 0)
	for rows.Next() {
		var d entities.Dictionary
		if err := rows.Scan(&d.ID, &d.Description); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", r.table, err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *dictionaryRepository) FindByID(ctx context.Context, id uint64) (*entities.Dictionary, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select("id", "description").From(r.table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building %s lookup query: %w", r.table, err)
	}

	var d entities.Dictionary
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&d.ID, &d.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scanning %s row: %w", r.table, err)
	}
	return &d, nil
}

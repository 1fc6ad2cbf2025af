package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"trackhub/internal/entities"
	apperrors "trackhub/pkg/errors"
	"trackhub/pkg/types"
)

const (
	equipmentTable      = "equipments"
	equipmentJoinClause = "equipments e LEFT JOIN equipment_types et ON e.type_id = et.id LEFT JOIN equipment_statuses es ON e.status_id = es.id LEFT JOIN locations l ON e.location_id = l.id"
	equipmentJoinFields = "e.id, e.name, e.description, e.type_id, e.status_id, e.location_id, e.created_at, e.updated_at, et.description, es.description, l.name"
)

var allowedEquipmentFilters = map[string]string{
	"type_id":     "e.type_id",
	"status_id":   "e.status_id",
	"location_id": "e.location_id",
}

var allowedEquipmentSortFields = map[string]string{
	"id":         "e.id",
	"name":       "e.name",
	"created_at": "e.created_at",
	"updated_at": "e.updated_at",
}

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	GetByStatus(ctx context.Context, statusID uint64) ([]entities.Equipment, error)
	FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error)
	Create(ctx context.Context, tx pgx.Tx, equipment entities.Equipment) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, id uint64, equipment entities.Equipment) error
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, statusID uint64) error
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error
	CountByStatus(ctx context.Context) (map[uint64]uint64, error)
	CountByType(ctx context.Context) (map[uint64]uint64, error)
}

type equipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &equipmentRepository{storage: storage, logger: logger}
}

func (r *equipmentRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.TypeID, &e.StatusID, &e.LocationID,
		&e.CreatedAt, &e.UpdatedAt,
		&e.TypeDescription, &e.StatusDescription, &e.LocationName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scanning equipments row: %w", err)
	}
	return &e, nil
}

func (r *equipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countBuilder := psql.Select("COUNT(e.id)").From(equipmentJoinClause)
	selectBuilder := psql.Select(equipmentJoinFields).From(equipmentJoinClause)

	countBuilder = applyFilters(countBuilder, allowedEquipmentFilters, filter.Filter)
	selectBuilder = applyFilters(selectBuilder, allowedEquipmentFilters, filter.Filter)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		search := sq.Or{
			sq.ILike{"e.name": pattern},
			sq.ILike{"e.description": pattern},
		}
		countBuilder = countBuilder.Where(search)
		selectBuilder = selectBuilder.Where(search)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building equipments count query: %w", err)
	}

	var totalCount uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("counting equipments: %w", err)
	}
	if totalCount == 0 {
		return []entities.Equipment{}, 0, nil
	}

	orderApplied := false
	for field, direction := range filter.Sort {
		if column, ok := allowedEquipmentSortFields[field]; ok {
			selectBuilder = selectBuilder.OrderBy(column + " " + strings.ToUpper(direction))
			orderApplied = true
		}
	}
	if !orderApplied {
		selectBuilder = selectBuilder.OrderBy("e.id DESC")
	}

	if filter.WithPagination {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building equipments query: %w", err)
	}
	r.logger.Debug("executing equipments query", zap.String("query", query), zap.Any("args", args))

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying equipments: %w", err)
	}
	defer rows.Close()

	list := make([]entities.Equipment, 0, filter.Limit)
	for rows.Next() {
		equipment, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *equipment)
	}
	return list, totalCount, rows.Err()
}

func (r *equipmentRepository) GetByStatus(ctx context.Context, statusID uint64) ([]entities.Equipment, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(equipmentJoinFields).
		From(equipmentJoinClause).
		Where(sq.Eq{"e.status_id": statusID}).
		OrderBy("e.updated_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building equipments by status query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying equipments by status: %w", err)
	}
	defer rows.Close()

	list := make([]entities.Equipment, 0)
	for rows.Next() {
		equipment, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *equipment)
	}
	return list, rows.Err()
}

func (r *equipmentRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(equipmentJoinFields).
		From(equipmentJoinClause).
		Where(sq.Eq{"e.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building equipment lookup query: %w", err)
	}
	return scanEquipment(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

func (r *equipmentRepository) Create(ctx context.Context, tx pgx.Tx, equipment entities.Equipment) (uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(equipmentTable).
		Columns("name", "description", "type_id", "status_id", "location_id", "created_at", "updated_at").
		Values(equipment.Name, equipment.Description, equipment.TypeID, equipment.StatusID, equipment.LocationID, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("building equipment insert: %w", err)
	}

	var newID uint64
	if err := r.getQuerier(tx).QueryRow(ctx, query, args...).Scan(&newID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return 0, fmt.Errorf("referenced type, status or location does not exist: %w", apperrors.ErrBadRequest)
		}
		return 0, fmt.Errorf("creating equipment: %w", err)
	}
	return newID, nil
}

func (r *equipmentRepository) Update(ctx context.Context, tx pgx.Tx, id uint64, equipment entities.Equipment) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update(equipmentTable).
		Set("name", equipment.Name).
		Set("description", equipment.Description).
		Set("type_id", equipment.TypeID).
		Set("status_id", equipment.StatusID).
		Set("location_id", equipment.LocationID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building equipment update: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("referenced type, status or location does not exist: %w", apperrors.ErrBadRequest)
		}
		return fmt.Errorf("updating equipment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *equipmentRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, statusID uint64) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update(equipmentTable).
		Set("status_id", statusID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building equipment status update: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating equipment status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *equipmentRepository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Delete(equipmentTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building equipment delete: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting equipment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *equipmentRepository) countGrouped(ctx context.Context, column string) (map[uint64]uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(column, "COUNT(id)").
		From(equipmentTable).
		GroupBy(column).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building equipment group count query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("counting equipments by %s: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[uint64]uint64)
	for rows.Next() {
		var key, count uint64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("scanning equipment group count: %w", err)
		}
		counts[key] = count
	}
	return counts, rows.Err()
}

func (r *equipmentRepository) CountByStatus(ctx context.Context) (map[uint64]uint64, error) {
	return r.countGrouped(ctx, "status_id")
}

func (r *equipmentRepository) CountByType(ctx context.Context) (map[uint64]uint64, error) {
	return r.countGrouped(ctx, "type_id")
}

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
	interventionTable      = "interventions"
	interventionJoinClause = "interventions i LEFT JOIN equipments e ON i.equipment_id = e.id LEFT JOIN users u ON i.user_id = u.id LEFT JOIN intervention_outcomes io ON i.outcome_id = io.id"
	interventionJoinFields = "i.id, i.date, i.description, i.duration_minutes, i.equipment_id, i.user_id, i.outcome_id, i.created_at, i.updated_at, e.name, TRIM(CONCAT(u.first_name, ' ', u.last_name)), io.description"
)

var allowedInterventionFilters = map[string]string{
	"equipment_id": "i.equipment_id",
	"user_id":      "i.user_id",
	"outcome_id":   "i.outcome_id",
	"date":         "i.date",
}

var allowedInterventionSortFields = map[string]string{
	"id":         "i.id",
	"date":       "i.date",
	"created_at": "i.created_at",
	"updated_at": "i.updated_at",
}

type InterventionRepositoryInterface interface {
	GetInterventions(ctx context.Context, filter types.Filter) ([]entities.Intervention, uint64, error)
	GetByEquipment(ctx context.Context, equipmentID uint64) ([]entities.Intervention, error)
	GetRecent(ctx context.Context, limit int) ([]entities.Intervention, error)
	FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Intervention, error)
	Create(ctx context.Context, tx pgx.Tx, intervention entities.Intervention) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, id uint64, intervention entities.Intervention) error
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error
	DeleteByEquipment(ctx context.Context, tx pgx.Tx, equipmentID uint64) (int64, error)
	Count(ctx context.Context) (uint64, error)
	CountByOutcome(ctx context.Context) (map[uint64]uint64, error)
	CountByUser(ctx context.Context) (map[uint64]uint64, error)
}

type interventionRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewInterventionRepository(storage *pgxpool.Pool, logger *zap.Logger) InterventionRepositoryInterface {
	return &interventionRepository{storage: storage, logger: logger}
}

func (r *interventionRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanIntervention(row pgx.Row) (*entities.Intervention, error) {
	var i entities.Intervention
	err := row.Scan(
		&i.ID, &i.Date, &i.Description, &i.DurationMinutes,
		&i.EquipmentID, &i.UserID, &i.OutcomeID,
		&i.CreatedAt, &i.UpdatedAt,
		&i.EquipmentName, &i.TechnicianName, &i.OutcomeDescription,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scanning interventions row: %w", err)
	}
	return &i, nil
}

func (r *interventionRepository) queryMany(ctx context.Context, builder sq.SelectBuilder) ([]entities.Intervention, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building interventions query: %w", err)
	}
	r.logger.Debug("executing interventions query", zap.String("query", query), zap.Any("args", args))

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying interventions: %w", err)
	}
	defer rows.Close()

	list := make([]entities.Intervention, 0)
	for rows.Next() {
		intervention, err := scanIntervention(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *intervention)
	}
	return list, rows.Err()
}

func (r *interventionRepository) GetInterventions(ctx context.Context, filter types.Filter) ([]entities.Intervention, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countBuilder := psql.Select("COUNT(i.id)").From(interventionJoinClause)
	selectBuilder := psql.Select(interventionJoinFields).From(interventionJoinClause)

	countBuilder = applyFilters(countBuilder, allowedInterventionFilters, filter.Filter)
	selectBuilder = applyFilters(selectBuilder, allowedInterventionFilters, filter.Filter)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		search := sq.Or{
			sq.ILike{"i.description": pattern},
			sq.ILike{"e.name": pattern},
		}
		countBuilder = countBuilder.Where(search)
		selectBuilder = selectBuilder.Where(search)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building interventions count query: %w", err)
	}

	var totalCount uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("counting interventions: %w", err)
	}
	if totalCount == 0 {
		return []entities.Intervention{}, 0, nil
	}

	orderApplied := false
	for field, direction := range filter.Sort {
		if column, ok := allowedInterventionSortFields[field]; ok {
			selectBuilder = selectBuilder.OrderBy(column + " " + strings.ToUpper(direction))
			orderApplied = true
		}
	}
	if !orderApplied {
		selectBuilder = selectBuilder.OrderBy("i.date DESC, i.id DESC")
	}

	if filter.WithPagination {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	list, err := r.queryMany(ctx, selectBuilder)
	if err != nil {
		return nil, 0, err
	}
	return list, totalCount, nil
}

func (r *interventionRepository) GetByEquipment(ctx context.Context, equipmentID uint64) ([]entities.Intervention, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return r.queryMany(ctx, psql.Select(interventionJoinFields).
		From(interventionJoinClause).
		Where(sq.Eq{"i.equipment_id": equipmentID}).
		OrderBy("i.date DESC, i.id DESC"))
}

func (r *interventionRepository) GetRecent(ctx context.Context, limit int) ([]entities.Intervention, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return r.queryMany(ctx, psql.Select(interventionJoinFields).
		From(interventionJoinClause).
		OrderBy("i.date DESC, i.id DESC").
		Limit(uint64(limit)))
}

func (r *interventionRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Intervention, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(interventionJoinFields).
		From(interventionJoinClause).
		Where(sq.Eq{"i.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building intervention lookup query: %w", err)
	}
	return scanIntervention(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

func (r *interventionRepository) Create(ctx context.Context, tx pgx.Tx, intervention entities.Intervention) (uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(interventionTable).
		Columns("date", "description", "duration_minutes", "equipment_id", "user_id", "outcome_id", "created_at", "updated_at").
		Values(intervention.Date, intervention.Description, intervention.DurationMinutes, intervention.EquipmentID, intervention.UserID, intervention.OutcomeID, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("building intervention insert: %w", err)
	}

	var newID uint64
	if err := r.getQuerier(tx).QueryRow(ctx, query, args...).Scan(&newID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return 0, fmt.Errorf("referenced equipment, user or outcome does not exist: %w", apperrors.ErrBadRequest)
		}
		return 0, fmt.Errorf("creating intervention: %w", err)
	}
	return newID, nil
}

func (r *interventionRepository) Update(ctx context.Context, tx pgx.Tx, id uint64, intervention entities.Intervention) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update(interventionTable).
		Set("date", intervention.Date).
		Set("description", intervention.Description).
		Set("duration_minutes", intervention.DurationMinutes).
		Set("equipment_id", intervention.EquipmentID).
		Set("user_id", intervention.UserID).
		Set("outcome_id", intervention.OutcomeID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building intervention update: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("referenced equipment, user or outcome does not exist: %w", apperrors.ErrBadRequest)
		}
		return fmt.Errorf("updating intervention: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *interventionRepository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Delete(interventionTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building intervention delete: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting intervention: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *interventionRepository) DeleteByEquipment(ctx context.Context, tx pgx.Tx, equipmentID uint64) (int64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Delete(interventionTable).Where(sq.Eq{"equipment_id": equipmentID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("building interventions delete: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting interventions for equipment %d: %w", equipmentID, err)
	}
	return result.RowsAffected(), nil
}

func (r *interventionRepository) Count(ctx context.Context) (uint64, error) {
	var count uint64
	if err := r.storage.QueryRow(ctx, "SELECT COUNT(id) FROM "+interventionTable).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting interventions: %w", err)
	}
	return count, nil
}

func (r *interventionRepository) countGrouped(ctx context.Context, column string) (map[uint64]uint64, error) {
	query := fmt.Sprintf("SELECT %s, COUNT(id) FROM %s WHERE %s IS NOT NULL GROUP BY %s", column, interventionTable, column, column)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("counting interventions by %s: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[uint64]uint64)
	for rows.Next() {
		var key, count uint64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("scanning intervention group count: %w", err)
		}
		counts[key] = count
	}
	return counts, rows.Err()
}

func (r *interventionRepository) CountByOutcome(ctx context.Context) (map[uint64]uint64, error) {
	return r.countGrouped(ctx, "outcome_id")
}

func (r *interventionRepository) CountByUser(ctx context.Context) (map[uint64]uint64, error) {
	return r.countGrouped(ctx, "user_id")
}

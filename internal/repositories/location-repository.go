package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/http"
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
	locationTable  = "locations"
	locationFields = "id, name, building, floor, department, created_at, updated_at"
)

var allowedLocationSortFields = map[string]bool{
	"id":         true,
	"name":       true,
	"building":   true,
	"created_at": true,
}

type LocationRepositoryInterface interface {
	GetLocations(ctx context.Context, filter types.Filter) ([]entities.Location, uint64, error)
	FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Location, error)
	Create(ctx context.Context, tx pgx.Tx, location entities.Location) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, id uint64, location entities.Location) error
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error
}

type locationRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewLocationRepository(storage *pgxpool.Pool, logger *zap.Logger) LocationRepositoryInterface {
	return &locationRepository{storage: storage, logger: logger}
}

func (r *locationRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanLocation(row pgx.Row) (*entities.Location, error) {
	var l entities.Location
	err := row.Scan(
		&l.ID, &l.Name, &l.Building, &l.Floor, &l.Department,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scanning locations row: %w", err)
	}
	return &l, nil
}

func (r *locationRepository) GetLocations(ctx context.Context, filter types.Filter) ([]entities.Location, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countBuilder := psql.Select("COUNT(id)").From(locationTable)
	selectBuilder := psql.Select(locationFields).From(locationTable)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		search := sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"building": pattern},
			sq.ILike{"department": pattern},
		}
		countBuilder = countBuilder.Where(search)
		selectBuilder = selectBuilder.Where(search)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building locations count query: %w", err)
	}

	var totalCount uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("counting locations: %w", err)
	}
	if totalCount == 0 {
		return []entities.Location{}, 0, nil
	}

	orderApplied := false
	for field, direction := range filter.Sort {
		if allowedLocationSortFields[field] {
			selectBuilder = selectBuilder.OrderBy(field + " " + strings.ToUpper(direction))
			orderApplied = true
		}
	}
	if !orderApplied {
		selectBuilder = selectBuilder.OrderBy("name ASC")
	}

	if filter.WithPagination {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building locations query: %w", err)
	}
	r.logger.Debug("executing locations query", zap.String("query", query), zap.Any("args", args))

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying locations: %w", err)
	}
	defer rows.Close()

	list := make([]entities.Location, 0, filter.Limit)
	for rows.Next() {
		location, err := scanLocation(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *location)
	}
	return list, totalCount, rows.Err()
}

func (r *locationRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Location, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(locationFields).From(locationTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building location lookup query: %w", err)
	}
	return scanLocation(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

func (r *locationRepository) Create(ctx context.Context, tx pgx.Tx, location entities.Location) (uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(locationTable).
		Columns("name", "building", "floor", "department", "created_at", "updated_at").
		Values(location.Name, location.Building, location.Floor, location.Department, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("building location insert: %w", err)
	}

	var newID uint64
	if err := r.getQuerier(tx).QueryRow(ctx, query, args...).Scan(&newID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, fmt.Errorf("a location with this name already exists: %w", apperrors.ErrConflict)
		}
		return 0, fmt.Errorf("creating location: %w", err)
	}
	return newID, nil
}

func (r *locationRepository) Update(ctx context.Context, tx pgx.Tx, id uint64, location entities.Location) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update(locationTable).
		Set("name", location.Name).
		Set("building", location.Building).
		Set("floor", location.Floor).
		Set("department", location.Department).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building location update: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("a location with this name already exists: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("updating location: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *locationRepository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Delete(locationTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building location delete: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewHttpError(http.StatusBadRequest, "the location is still assigned to equipment and cannot be removed", err)
		}
		return fmt.Errorf("deleting location: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

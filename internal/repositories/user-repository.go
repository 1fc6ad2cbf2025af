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
	userTable  = "users"
	userFields = "id, username, password_hash, role, first_name, last_name, email, phone, created_at, updated_at"
)

var allowedUserFilters = map[string]string{
	"id":   "id",
	"role": "role",
}

var allowedUserSortFields = map[string]bool{
	"id":         true,
	"username":   true,
	"last_name":  true,
	"created_at": true,
	"updated_at": true,
}

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	GetTechnicians(ctx context.Context) ([]entities.User, error)
	FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	Create(ctx context.Context, tx pgx.Tx, user entities.User) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, id uint64, user entities.User) error
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error
	CountByRole(ctx context.Context, tx pgx.Tx, role entities.Role) (int, error)
}

type userRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &userRepository{storage: storage, logger: logger}
}

func (r *userRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Role,
		&u.FirstName, &u.LastName, &u.Email, &u.Phone,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scanning users row: %w", err)
	}
	return &u, nil
}

func (r *userRepository) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countBuilder := psql.Select("COUNT(id)").From(userTable)
	selectBuilder := psql.Select(userFields).From(userTable)

	countBuilder = applyFilters(countBuilder, allowedUserFilters, filter.Filter)
	selectBuilder = applyFilters(selectBuilder, allowedUserFilters, filter.Filter)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		search := sq.Or{
			sq.ILike{"username": pattern},
			sq.ILike{"first_name": pattern},
			sq.ILike{"last_name": pattern},
			sq.ILike{"email": pattern},
		}
		countBuilder = countBuilder.Where(search)
		selectBuilder = selectBuilder.Where(search)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building users count query: %w", err)
	}

	var totalCount uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("counting users: %w", err)
	}
	if totalCount == 0 {
		return []entities.User{}, 0, nil
	}

	orderApplied := false
	for field, direction := range filter.Sort {
		if allowedUserSortFields[field] {
			selectBuilder = selectBuilder.OrderBy(field + " " + strings.ToUpper(direction))
			orderApplied = true
		}
	}
	if !orderApplied {
		selectBuilder = selectBuilder.OrderBy("id DESC")
	}

	if filter.WithPagination {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building users query: %w", err)
	}
	r.logger.Debug("executing users query", zap.String("query", query), zap.Any("args", args))

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0, filter.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	return users, totalCount, rows.Err()
}

func (r *userRepository) GetTechnicians(ctx context.Context) ([]entities.User, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(userFields).
		From(userTable).
		Where(sq.Eq{"role": entities.RoleTechnician}).
		OrderBy("last_name ASC, first_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building technicians query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying technicians: %w", err)
	}
	defer rows.Close()

	technicians := make([]entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		technicians = append(technicians, *user)
	}
	return technicians, rows.Err()
}

func (r *userRepository) findOne(ctx context.Context, querier Querier, where sq.Eq) (*entities.User, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(userFields).From(userTable).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building user lookup query: %w", err)
	}
	return scanUser(querier.QueryRow(ctx, query, args...))
}

func (r *userRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.User, error) {
	return r.findOne(ctx, r.getQuerier(tx), sq.Eq{"id": id})
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findOne(ctx, r.storage, sq.Eq{"username": username})
}

func (r *userRepository) Create(ctx context.Context, tx pgx.Tx, user entities.User) (uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(userTable).
		Columns("username", "password_hash", "role", "first_name", "last_name", "email", "phone", "created_at", "updated_at").
		Values(user.Username, user.PasswordHash, user.Role, user.FirstName, user.LastName, user.Email, user.Phone, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("building user insert: %w", err)
	}

	var newID uint64
	if err := r.getQuerier(tx).QueryRow(ctx, query, args...).Scan(&newID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, fmt.Errorf("username is already taken: %w", apperrors.ErrConflict)
		}
		return 0, fmt.Errorf("creating user: %w", err)
	}
	return newID, nil
}

func (r *userRepository) Update(ctx context.Context, tx pgx.Tx, id uint64, user entities.User) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update(userTable).
		Set("username", user.Username).
		Set("password_hash", user.PasswordHash).
		Set("role", user.Role).
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("email", user.Email).
		Set("phone", user.Phone).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building user update: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("username is already taken: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("updating user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Delete(userTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building user delete: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewHttpError(http.StatusBadRequest, "the user still has interventions and cannot be removed", err)
		}
		return fmt.Errorf("deleting user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) CountByRole(ctx context.Context, tx pgx.Tx, role entities.Role) (int, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select("COUNT(id)").From(userTable).Where(sq.Eq{"role": role}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("building role count query: %w", err)
	}

	var count int
	if err := r.getQuerier(tx).QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting users by role: %w", err)
	}
	return count, nil
}

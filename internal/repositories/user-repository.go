package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"parts-order-system/internal/entities"
	apperrors "parts-order-system/pkg/errors"
)

const userColumns = `id, login, password_hash, fio, phone, department_name, position, role_code, is_reviewer, created_at`

type UserRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.User, error)
	FindByLogin(ctx context.Context, login string) (*entities.User, error)
	GetReviewers(ctx context.Context) ([]entities.User, error)
	ExistingReviewerIDs(ctx context.Context, ids []uint64) ([]uint64, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{storage: storage}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(
		&u.ID, &u.Login, &u.PasswordHash, &u.Fio, &u.Phone,
		&u.DepartmentName, &u.Position, &u.RoleCode, &u.IsReviewer, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования пользователя: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE login = $1`, userColumns)
	return scanUser(r.storage.QueryRow(ctx, query, login))
}

func (r *UserRepository) GetReviewers(ctx context.Context) ([]entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE is_reviewer = TRUE ORDER BY fio`, userColumns)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка проверяющих: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(
			&u.ID, &u.Login, &u.PasswordHash, &u.Fio, &u.Phone,
			&u.DepartmentName, &u.Position, &u.RoleCode, &u.IsReviewer, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования пользователя: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ExistingReviewerIDs возвращает те из переданных id, которые действительно
// являются активными проверяющими. Используется при валидации отправки на проверку.
func (r *UserRepository) ExistingReviewerIDs(ctx context.Context, ids []uint64) ([]uint64, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id").
		From("users").
		Where(sq.Eq{"id": ids, "is_reviewer": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки проверяющих: %w", err)
	}
	defer rows.Close()

	found := make([]uint64, 0, len(ids))
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ошибка сканирования id: %w", err)
		}
		found = append(found, id)
	}
	return found, rows.Err()
}

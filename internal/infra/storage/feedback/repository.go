package feedback

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	"github.com/mentorweb/MW-SchedulingService/pkg/dbmetrics"
	"github.com/mentorweb/MW-SchedulingService/pkg/psqlbuilder"
)

const pqUniqueViolation = "23505"

// Repository репозиторий для работы с отзывами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает отзыв
// Уникальный индекс (appointment_id, author_role) защищает от дублей
func (r *Repository) Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("feedback").
		Columns(
			"appointment_id",
			"author_role",
			"rating",
			"notes",
		).
		Values(
			f.AppointmentID,
			f.AuthorRole,
			f.Rating,
			f.Notes,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&f.ID, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrFeedbackExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	f.CreatedAt = createdAt.Time

	return f, nil
}

// GetByAppointment получает отзывы записи (не более двух: по одному на роль)
func (r *Repository) GetByAppointment(ctx context.Context, appointmentID int64) ([]*domain.Feedback, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"appointment_id",
		"author_role",
		"rating",
		"notes",
		"created_at",
	).
		From("feedback").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		OrderBy("author_role ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	feedbacks := make([]*domain.Feedback, 0)
	for rows.Next() {
		var f domain.Feedback
		var createdAt sql.NullTime

		err := rows.Scan(
			&f.ID,
			&f.AppointmentID,
			&f.AuthorRole,
			&f.Rating,
			&f.Notes,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByAppointment - scan row: %v", ErrScanRow, err)
		}

		f.CreatedAt = createdAt.Time
		feedbacks = append(feedbacks, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByAppointment - rows error: %v", ErrScanRow, err)
	}

	return feedbacks, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUniqueViolation
	}
	return false
}

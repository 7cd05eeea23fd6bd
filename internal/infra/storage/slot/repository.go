package slot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	"github.com/mentorweb/MW-SchedulingService/pkg/dbmetrics"
	"github.com/mentorweb/MW-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch создает набор слотов, произведенный expander-ом
// Вызывается внутри сериализуемой транзакции, чтобы повторная отправка
// паттерна не дублировала слоты
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.Slot) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, s := range slots {
		query, args, err := psqlbuilder.Insert("slots").
			Columns(
				"program_id",
				"host_id",
				"slot_date",
				"start_time",
				"end_time",
				"duration_minutes",
				"physical_location",
				"meeting_url",
				"is_dropin",
				"status",
			).
			Values(
				s.ProgramID,
				s.HostID,
				s.Date,
				s.StartTime,
				s.EndTime,
				s.DurationMinutes,
				s.PhysicalLocation,
				s.MeetingURL,
				s.IsDropin,
				s.Status,
			).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()

		if err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
		}

		var createdAt, updatedAt sql.NullTime
		if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time
	}

	return slots, nil
}

// GetByID получает слот по ID
// Внутри транзакции блокирует строку (FOR UPDATE) - используется при бронировании
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"program_id",
		"host_id",
		"slot_date",
		"start_time",
		"end_time",
		"duration_minutes",
		"physical_location",
		"meeting_url",
		"is_dropin",
		"status",
		"created_at",
		"updated_at",
	).
		From("slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// GetByProgramWithFilter получает слоты программы с фильтрацией
// Результат отсортирован по дате и времени начала (ASC)
func (r *Repository) GetByProgramWithFilter(ctx context.Context, filter domain.ProgramSlotsFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"program_id",
		"host_id",
		"slot_date",
		"start_time",
		"end_time",
		"duration_minutes",
		"physical_location",
		"meeting_url",
		"is_dropin",
		"status",
		"created_at",
		"updated_at",
	).
		From("slots").
		Where(squirrel.Eq{"program_id": filter.ProgramID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"slot_date": *filter.EndDate})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	selectBuilder = selectBuilder.OrderBy("slot_date ASC, start_time ASC")

	// Внутри транзакции блокируем диапазон - защита повторной отправки паттерна
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProgramWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProgramWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// MarkReserved атомарно переводит слот open -> reserved
// Compare-and-set: проигравший конкурентное бронирование получает ErrSlotUnavailable
func (r *Repository) MarkReserved(ctx context.Context, id int64) error {
	return r.compareAndSetStatus(ctx, "MarkReserved", id,
		domain.SlotStatusOpen, domain.SlotStatusReserved, ErrSlotUnavailable)
}

// Reopen атомарно переводит слот reserved -> open
// Вызывается при отмене записи, пока дата слота не прошла
func (r *Repository) Reopen(ctx context.Context, id int64) error {
	return r.compareAndSetStatus(ctx, "Reopen", id,
		domain.SlotStatusReserved, domain.SlotStatusOpen, ErrSlotNotFound)
}

// UpdateStatus обновляет статус слота без compare-and-set
// Используется хостом для переключения open <-> inactive
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Delete удаляет слот (физическое удаление)
// Проверка, что слот не забронирован, выполняется на уровне сервиса
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// compareAndSetStatus выполняет UPDATE со статусом в WHERE
// rowsAffected == 0 означает, что слот не в ожидаемом статусе
func (r *Repository) compareAndSetStatus(
	ctx context.Context,
	op string,
	id int64,
	from, to domain.SlotStatus,
	conflictErr error,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return conflictErr
	}

	return nil
}

func (r *Repository) scanSlot(row *sql.Row) (*domain.Slot, error) {
	var s domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.ProgramID,
		&s.HostID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.DurationMinutes,
		&s.PhysicalLocation,
		&s.MeetingURL,
		&s.IsDropin,
		&s.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		var s domain.Slot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.ProgramID,
			&s.HostID,
			&s.Date,
			&s.StartTime,
			&s.EndTime,
			&s.DurationMinutes,
			&s.PhysicalLocation,
			&s.MeetingURL,
			&s.IsDropin,
			&s.Status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

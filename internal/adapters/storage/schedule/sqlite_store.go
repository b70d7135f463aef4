package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/schedule"
)

const selectColumns = "SELECT id, module_name, COALESCE(trainer_id, ''), day, start_time, end_time, room FROM class_session"

// dayOrder sorts weekday names Monday first.
const dayOrder = "CASE day WHEN 'monday' THEN 0 WHEN 'tuesday' THEN 1 WHEN 'wednesday' THEN 2 WHEN 'thursday' THEN 3 WHEN 'friday' THEN 4 WHEN 'saturday' THEN 5 ELSE 6 END"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new ScheduleStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Schedule by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Schedule, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	entity, err := scanSchedule(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Schedule{}, fmt.Errorf("schedule not found: %w", err)
	}
	return entity, err
}

// Save persists a Schedule to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Schedule) error {
	var trainerID any
	if entity.TrainerID != "" {
		trainerID = entity.TrainerID
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO class_session (id, module_name, trainer_id, day, start_time, end_time, room) VALUES (?, ?, ?, ?, ?, ?, ?) ON CONFLICT(id) DO UPDATE SET module_name=excluded.module_name, trainer_id=excluded.trainer_id, day=excluded.day, start_time=excluded.start_time, end_time=excluded.end_time, room=excluded.room",
		entity.ID, entity.ModuleName, trainerID, entity.Day, entity.StartTime, entity.EndTime, entity.Room,
	)
	return err
}

// Delete removes a Schedule from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM class_session WHERE id = ?", id)
	return err
}

// List retrieves all Schedules, Monday first then by start time.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Schedule, error) {
	return s.querySchedules(ctx, selectColumns+" ORDER BY "+dayOrder+", start_time, module_name")
}

// ListByDay retrieves Schedules for a specific day.
// PRE: day is a valid weekday
// POST: Returns schedules for the given day ordered by start time
func (s *SQLiteStore) ListByDay(ctx context.Context, day string) ([]domain.Schedule, error) {
	return s.querySchedules(ctx, selectColumns+" WHERE day = ? ORDER BY start_time, module_name", day)
}

// ListByTrainerID retrieves Schedules led by a trainer.
// PRE: trainerID is non-empty
func (s *SQLiteStore) ListByTrainerID(ctx context.Context, trainerID string) ([]domain.Schedule, error) {
	return s.querySchedules(ctx, selectColumns+" WHERE trainer_id = ? ORDER BY "+dayOrder+", start_time", trainerID)
}

func (s *SQLiteStore) querySchedules(ctx context.Context, query string, args ...any) ([]domain.Schedule, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Schedule
	for rows.Next() {
		entity, err := scanSchedule(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanSchedule(scan func(dest ...any) error) (domain.Schedule, error) {
	var e domain.Schedule
	err := scan(&e.ID, &e.ModuleName, &e.TrainerID, &e.Day, &e.StartTime, &e.EndTime, &e.Room)
	return e, err
}

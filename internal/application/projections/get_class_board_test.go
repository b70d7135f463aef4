package projections

import (
	"context"
	"errors"
	"testing"
	"time"

	"gymdesk/internal/domain/classwindow"
	"gymdesk/internal/domain/closure"
	"gymdesk/internal/domain/schedule"
	"gymdesk/internal/domain/trainer"
)

type mockBoardScheduleStore struct {
	byDay map[string][]schedule.Schedule
	err   error
	asked []string
}

// ListByDay returns seeded schedules for the day.
func (m *mockBoardScheduleStore) ListByDay(_ context.Context, day string) ([]schedule.Schedule, error) {
	m.asked = append(m.asked, day)
	return m.byDay[day], m.err
}

// List returns every seeded schedule.
func (m *mockBoardScheduleStore) List(_ context.Context) ([]schedule.Schedule, error) {
	var all []schedule.Schedule
	for _, d := range schedule.ValidDays {
		all = append(all, m.byDay[d]...)
	}
	return all, m.err
}

type mockClosureStore struct {
	closures []closure.Closure
}

// List returns seeded closures.
func (m *mockClosureStore) List(_ context.Context) ([]closure.Closure, error) {
	return m.closures, nil
}

type mockTrainerStore struct {
	trainers map[string]trainer.Trainer
	calls    int
}

// GetByID returns a seeded trainer.
func (m *mockTrainerStore) GetByID(_ context.Context, id string) (trainer.Trainer, error) {
	m.calls++
	t, ok := m.trainers[id]
	if !ok {
		return trainer.Trainer{}, errors.New("trainer not found")
	}
	return t, nil
}

// Monday 9 March 2026, 17:30.
var boardNow = time.Date(2026, 3, 9, 17, 30, 0, 0, time.UTC)

func mondaySchedules() []schedule.Schedule {
	return []schedule.Schedule{
		{ID: "late", ModuleName: "Spin", Day: schedule.Monday, StartTime: "20:00", EndTime: "21:00"},
		{ID: "soon", ModuleName: "Boxing", TrainerID: "t1", Day: schedule.Monday, StartTime: "18:00", EndTime: "19:00"},
		{ID: "now", ModuleName: "Yoga", TrainerID: "t1", Day: schedule.Monday, StartTime: "17:00", EndTime: "18:00"},
		{ID: "done", ModuleName: "Pilates", TrainerID: "gone", Day: schedule.Monday, StartTime: "07:00", EndTime: "08:00"},
	}
}

// TestQueryGetClassBoard_EvaluatesTodaysSessions checks filtering, ordering, enrichment and counts.
func TestQueryGetClassBoard_EvaluatesTodaysSessions(t *testing.T) {
	schedStore := &mockBoardScheduleStore{byDay: map[string][]schedule.Schedule{
		schedule.Monday:  mondaySchedules(),
		schedule.Tuesday: {{ID: "tue", ModuleName: "Yoga", Day: schedule.Tuesday, StartTime: "17:00", EndTime: "18:00"}},
	}}
	trainers := &mockTrainerStore{trainers: map[string]trainer.Trainer{"t1": {ID: "t1", Name: "Kim"}}}

	board, err := QueryGetClassBoard(context.Background(), boardNow, GetClassBoardDeps{
		ScheduleStore: schedStore,
		ClosureStore:  &mockClosureStore{},
		TrainerStore:  trainers,
	})
	if err != nil {
		t.Fatalf("QueryGetClassBoard() error = %v", err)
	}

	if len(schedStore.asked) != 1 || schedStore.asked[0] != schedule.Monday {
		t.Errorf("asked for days %v, want [monday]", schedStore.asked)
	}
	if board.Day != schedule.Monday || board.ClosedFor != "" {
		t.Errorf("board day=%q closed=%q", board.Day, board.ClosedFor)
	}

	wantOrder := []string{"done", "now", "soon", "late"}
	wantPhase := []classwindow.Phase{classwindow.PhaseCompleted, classwindow.PhaseOngoing, classwindow.PhaseStartingSoon, classwindow.PhaseUpcoming}
	if len(board.Entries) != len(wantOrder) {
		t.Fatalf("entries = %d, want %d", len(board.Entries), len(wantOrder))
	}
	for i, e := range board.Entries {
		if e.ScheduleID != wantOrder[i] {
			t.Errorf("entries[%d] = %s, want %s", i, e.ScheduleID, wantOrder[i])
		}
		if e.Phase != wantPhase[i] {
			t.Errorf("entries[%d] phase = %s, want %s", i, e.Phase, wantPhase[i])
		}
		want := classwindow.Evaluate(classwindow.Session{ModuleName: e.ModuleName, StartTime: e.StartTime, EndTime: e.EndTime}, boardNow)
		if e.Phase != want.Phase {
			t.Errorf("entries[%d] disagrees with Evaluate: %s vs %s", i, e.Phase, want.Phase)
		}
	}

	if got := board.Entries[1]; got.ProgressPercent == nil || *got.ProgressPercent != 50 {
		t.Errorf("ongoing progress = %v, want 50", got.ProgressPercent)
	}
	if got := board.Entries[2]; got.MinutesToStart == nil || *got.MinutesToStart != 30 {
		t.Errorf("starting soon minutes = %v, want 30", got.MinutesToStart)
	}
	if board.Entries[1].TrainerName != "Kim" || board.Entries[0].TrainerName != "" {
		t.Errorf("trainer names = %q, %q", board.Entries[1].TrainerName, board.Entries[0].TrainerName)
	}
	if trainers.calls != 2 {
		t.Errorf("trainer lookups = %d, want 2 (cached per trainer)", trainers.calls)
	}
	for _, p := range wantPhase {
		if board.Counts[p] != 1 {
			t.Errorf("Counts[%s] = %d, want 1", p, board.Counts[p])
		}
	}
}

// TestQueryGetClassBoard_ClosureDay returns an empty board with the reason.
func TestQueryGetClassBoard_ClosureDay(t *testing.T) {
	schedStore := &mockBoardScheduleStore{byDay: map[string][]schedule.Schedule{schedule.Monday: mondaySchedules()}}
	closures := &mockClosureStore{closures: []closure.Closure{{
		ID: "c1", Reason: "Public holiday",
		StartDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
	}}}

	board, err := QueryGetClassBoard(context.Background(), boardNow, GetClassBoardDeps{ScheduleStore: schedStore, ClosureStore: closures})
	if err != nil {
		t.Fatalf("QueryGetClassBoard() error = %v", err)
	}
	if board.ClosedFor != "Public holiday" {
		t.Errorf("ClosedFor = %q", board.ClosedFor)
	}
	if board.Entries == nil || len(board.Entries) != 0 {
		t.Errorf("Entries = %#v, want empty non-nil slice", board.Entries)
	}
	if len(schedStore.asked) != 0 {
		t.Error("schedule store should not be queried on a closure day")
	}
}

// TestQueryGetClassBoard_SkipsInvalidRows keeps the board alive when a stored row is malformed.
func TestQueryGetClassBoard_SkipsInvalidRows(t *testing.T) {
	schedStore := &mockBoardScheduleStore{byDay: map[string][]schedule.Schedule{schedule.Monday: {
		{ID: "bad", ModuleName: "Yoga", Day: schedule.Monday, StartTime: "5pm", EndTime: "18:00"},
		{ID: "ok", ModuleName: "Yoga", Day: schedule.Monday, StartTime: "17:00", EndTime: "18:00"},
	}}}

	board, err := QueryGetClassBoard(context.Background(), boardNow, GetClassBoardDeps{ScheduleStore: schedStore})
	if err != nil {
		t.Fatalf("QueryGetClassBoard() error = %v", err)
	}
	if len(board.Entries) != 1 || board.Entries[0].ScheduleID != "ok" {
		t.Errorf("Entries = %+v, want only ok", board.Entries)
	}
}

// TestQueryGetClassBoard_StoreError propagates.
func TestQueryGetClassBoard_StoreError(t *testing.T) {
	schedStore := &mockBoardScheduleStore{err: errors.New("db down")}
	if _, err := QueryGetClassBoard(context.Background(), boardNow, GetClassBoardDeps{ScheduleStore: schedStore}); err == nil {
		t.Error("expected error")
	}
}

// TestQueryGetWeeklySchedule groups Monday first.
func TestQueryGetWeeklySchedule(t *testing.T) {
	schedStore := &mockBoardScheduleStore{byDay: map[string][]schedule.Schedule{
		schedule.Monday: mondaySchedules(),
		schedule.Sunday: {{ID: "sun", ModuleName: "Stretch", Day: schedule.Sunday, StartTime: "09:00", EndTime: "09:45"}},
	}}
	trainers := &mockTrainerStore{trainers: map[string]trainer.Trainer{"t1": {ID: "t1", Name: "Kim"}}}

	days, err := QueryGetWeeklySchedule(context.Background(), GetWeeklyScheduleDeps{ScheduleStore: schedStore, TrainerStore: trainers})
	if err != nil {
		t.Fatalf("QueryGetWeeklySchedule() error = %v", err)
	}
	if len(days) != 7 || days[0].Day != schedule.Monday || days[6].Day != schedule.Sunday {
		t.Fatalf("days = %+v", days)
	}
	if len(days[0].Sessions) != 4 || days[0].Sessions[0].ID != "done" || days[0].Sessions[3].ID != "late" {
		t.Errorf("monday = %+v", days[0].Sessions)
	}
	if days[0].Sessions[1].TrainerName != "Kim" {
		t.Errorf("trainer name = %q", days[0].Sessions[1].TrainerName)
	}
	if days[1].Sessions == nil || len(days[1].Sessions) != 0 {
		t.Errorf("tuesday = %#v, want empty slice", days[1].Sessions)
	}
	if days[6].Sessions[0].DurationHours != 0.75 {
		t.Errorf("sunday duration = %v, want 0.75", days[6].Sessions[0].DurationHours)
	}
}

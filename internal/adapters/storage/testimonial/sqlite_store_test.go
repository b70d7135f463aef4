package testimonial_test

import (
	"context"
	"testing"
	"time"

	"gymdesk/internal/adapters/storage"
	store "gymdesk/internal/adapters/storage/testimonial"
	domain "gymdesk/internal/domain/testimonial"
)

// TestSQLiteStore_ModerationFlow verifies status filtering and moderated_at round-trip.
func TestSQLiteStore_ModerationFlow(t *testing.T) {
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("init: %v", err)
	}
	s := store.NewSQLiteStore(storage.NewTimedDB(db, nil, 0))
	ctx := context.Background()
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

	older := domain.Testimonial{ID: "1", AuthorID: "m1", AuthorName: "Sam", Content: "Great coaches", Rating: 5, Status: domain.StatusPending, CreatedAt: now}
	newer := domain.Testimonial{ID: "2", AuthorID: "m2", AuthorName: "Ari", Content: "Too crowded", Rating: 2, Status: domain.StatusPending, CreatedAt: now.Add(time.Hour)}
	for _, tm := range []domain.Testimonial{older, newer} {
		if err := s.Save(ctx, tm); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	if err := older.Approve("admin-1", now.Add(2*time.Hour)); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if err := s.Save(ctx, older); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	all, err := s.ListByStatus(ctx, "")
	if err != nil {
		t.Fatalf("ListByStatus() error = %v", err)
	}
	if len(all) != 2 || all[0].ID != "2" {
		t.Errorf("ListByStatus(all) = %+v, want newest first", all)
	}

	approved, err := s.ListByStatus(ctx, domain.StatusApproved)
	if err != nil {
		t.Fatalf("ListByStatus() error = %v", err)
	}
	if len(approved) != 1 || approved[0].ModeratedBy != "admin-1" || !approved[0].ModeratedAt.Equal(now.Add(2*time.Hour)) {
		t.Errorf("ListByStatus(approved) = %+v", approved)
	}

	pending, _ := s.ListByStatus(ctx, domain.StatusPending)
	if len(pending) != 1 || !pending[0].ModeratedAt.IsZero() {
		t.Errorf("ListByStatus(pending) = %+v", pending)
	}

	if err := s.Delete(ctx, "2"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.GetByID(ctx, "2"); err == nil {
		t.Error("expected not found after Delete")
	}
}

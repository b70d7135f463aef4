package testimonial_test

import (
	"strings"
	"testing"
	"time"

	"gymdesk/internal/domain/testimonial"
)

// TestTestimonial_Validate tests validation of Testimonial.
func TestTestimonial_Validate(t *testing.T) {
	valid := func() testimonial.Testimonial {
		return testimonial.Testimonial{AuthorID: "a1", AuthorName: "Sam", Content: "Best gym in town", Rating: 5, Status: testimonial.StatusPending}
	}

	tests := []struct {
		name    string
		mutate  func(*testimonial.Testimonial)
		wantErr error
	}{
		{name: "valid", mutate: func(*testimonial.Testimonial) {}},
		{name: "missing author", mutate: func(tm *testimonial.Testimonial) { tm.AuthorID = "" }, wantErr: testimonial.ErrEmptyAuthor},
		{name: "empty content", mutate: func(tm *testimonial.Testimonial) { tm.Content = " " }, wantErr: testimonial.ErrEmptyContent},
		{name: "content too long", mutate: func(tm *testimonial.Testimonial) { tm.Content = strings.Repeat("c", 1001) }, wantErr: testimonial.ErrContentTooLong},
		{name: "rating zero", mutate: func(tm *testimonial.Testimonial) { tm.Rating = 0 }, wantErr: testimonial.ErrInvalidRating},
		{name: "rating six", mutate: func(tm *testimonial.Testimonial) { tm.Rating = 6 }, wantErr: testimonial.ErrInvalidRating},
		{name: "bad status", mutate: func(tm *testimonial.Testimonial) { tm.Status = "hidden" }, wantErr: testimonial.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := valid()
			tt.mutate(&tm)
			if err := tm.Validate(); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestTestimonial_Moderation tests approve/reject transitions.
func TestTestimonial_Moderation(t *testing.T) {
	at := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	approved := testimonial.Testimonial{Status: testimonial.StatusPending}
	if err := approved.Approve("admin-1", at); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if !approved.IsPublic() || approved.ModeratedBy != "admin-1" || !approved.ModeratedAt.Equal(at) {
		t.Errorf("after Approve(): %+v", approved)
	}
	if err := approved.Reject("admin-1", at); err != testimonial.ErrAlreadyModerated {
		t.Errorf("Reject() after approve error = %v, want ErrAlreadyModerated", err)
	}

	rejected := testimonial.Testimonial{Status: testimonial.StatusPending}
	if err := rejected.Reject("admin-2", at); err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	if rejected.IsPublic() || rejected.Status != testimonial.StatusRejected {
		t.Errorf("after Reject(): %+v", rejected)
	}
}

package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"authentiq/internal/domain"
)

func newTestStore(t *testing.T, now time.Time) *Store {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	s := New(db, Options{Now: func() time.Time { return now }})
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return s
}

func TestSessionRoundTrip(t *testing.T) {
	s := newTestStore(t, time.Now())
	u := &domain.StoredUser{ID: "u-1", Email: "jo@example.com", Token: "tok-abc"}
	s.SaveUser(u)
	got := s.User()
	if got == nil || got.ID != "u-1" || got.Token != "tok-abc" {
		t.Fatalf("User() = %+v", got)
	}
	s.ClearUser()
	if s.User() != nil {
		t.Fatal("User() after clear is not nil")
	}
	s.ClearUser() // idempotent
}

func TestRefreshUserCarriesTokenForward(t *testing.T) {
	s := newTestStore(t, time.Now())
	s.SaveUser(&domain.StoredUser{ID: "u-1", Token: "tok-abc"})
	s.RefreshUser(&domain.StoredUser{ID: "u-1", Bio: "updated"})
	got := s.User()
	if got == nil || got.Token != "tok-abc" || got.Bio != "updated" {
		t.Fatalf("refreshed user = %+v", got)
	}
}

func TestReserveCeiling(t *testing.T) {
	s := newTestStore(t, time.Now())
	if err := s.Reserve(domain.CategoryBulk); err != nil {
		t.Fatalf("first Reserve(bulk) = %v", err)
	}
	if err := s.Reserve(domain.CategoryBulk); !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("Reserve(bulk) at ceiling = %v, want ErrQuotaExceeded", err)
	}
	if got := s.Limits().Bulk; got != 1 {
		t.Fatalf("bulk counter = %d, want 1", got)
	}
}

func TestNewDayReadsAsZero(t *testing.T) {
	day1 := time.Date(2024, time.March, 4, 23, 0, 0, 0, time.UTC)
	s := newTestStore(t, day1)
	for i := 0; i < domain.CeilingPlagiarism; i++ {
		if err := s.Reserve(domain.CategoryPlagiarism); err != nil {
			t.Fatalf("Reserve %d: %v", i, err)
		}
	}
	if s.CheckLimit(domain.CategoryPlagiarism) {
		t.Fatal("CheckLimit at ceiling = true, want false")
	}

	// Same database, next calendar day.
	s.now = func() time.Time { return day1.AddDate(0, 0, 1) }
	if !s.CheckLimit(domain.CategoryPlagiarism) {
		t.Fatal("CheckLimit on a new day = false, want true")
	}
	if got := s.Limits().Plagiarism; got != 0 {
		t.Fatalf("new-day counter = %d, want 0", got)
	}
}

func TestCategoryIsolation(t *testing.T) {
	s := newTestStore(t, time.Now())
	s.IncrementLimit(domain.CategoryPlagiarism)
	s.IncrementLimit(domain.CategoryPlagiarism)
	s.IncrementLimit(domain.CategoryBulk)
	limits := s.Limits()
	if limits.Plagiarism != 2 || limits.Humanizer != 0 || limits.Bulk != 1 {
		t.Fatalf("Limits() = %+v, want {2 0 1}", limits)
	}
}

func TestActivitiesPersistAndTrim(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	s := newTestStore(t, now)
	rec := s.AppendActivity(domain.Activity{Type: domain.ActivityPlagiarism, Title: "Essay", Score: 42})
	if rec.ID == "" || rec.Timestamp.IsZero() {
		t.Fatalf("AppendActivity left id/timestamp empty: %+v", rec)
	}
	items := s.Activities()
	if len(items) != 1 || items[0].Title != "Essay" || items[0].Score != 42 {
		t.Fatalf("Activities() = %+v", items)
	}
}

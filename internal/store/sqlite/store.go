package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"authentiq/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS session (
	slot INTEGER PRIMARY KEY CHECK (slot = 1),
	payload TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS usage_days (
	day TEXT PRIMARY KEY,
	plagiarism INTEGER NOT NULL DEFAULT 0,
	humanizer INTEGER NOT NULL DEFAULT 0,
	bulk INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS activities (
	id TEXT PRIMARY KEY,
	type TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	score REAL NOT NULL DEFAULT 0,
	word_count INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);
`

// usageColumn maps a category onto its fixed column name. Categories are a
// closed set; this is not built from caller input.
func usageColumn(c domain.Category) (string, bool) {
	switch c {
	case domain.CategoryPlagiarism:
		return "plagiarism", true
	case domain.CategoryHumanizer:
		return "humanizer", true
	case domain.CategoryBulk:
		return "bulk", true
	}
	return "", false
}

// Options configures a Store.
type Options struct {
	Now func() time.Time
}

// Store implements domain.SessionStore, domain.UsageStore and
// domain.ActivityStore on an embedded database. Like the file store it
// absorbs storage failures: reads degrade to empty defaults.
type Store struct {
	db        *sql.DB
	now       func() time.Time
	mu        sync.Mutex
	listeners []func(*domain.StoredUser)
}

// New constructs a Store over an opened database.
func New(db *sql.DB, opts Options) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{db: db, now: now}
}

// Init creates the schema.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create state schema: %w", err)
	}
	return nil
}

func (s *Store) today() string {
	return s.now().Format(domain.DayFormat)
}

// SaveUser writes the full record verbatim, replacing any prior value.
func (s *Store) SaveUser(u *domain.StoredUser) {
	if u == nil {
		return
	}
	payload, err := json.Marshal(u)
	if err != nil {
		return
	}
	_, _ = s.db.Exec(`
INSERT INTO session (slot, payload) VALUES (1, ?)
ON CONFLICT(slot) DO UPDATE SET payload = excluded.payload`,
		string(payload),
	)
	s.notifyUserChange(u)
}

// User returns the cached record, or nil.
func (s *Store) User() *domain.StoredUser {
	row := s.db.QueryRow(`SELECT payload FROM session WHERE slot = 1`)
	var payload string
	if err := row.Scan(&payload); err != nil {
		return nil
	}
	var u domain.StoredUser
	if err := json.Unmarshal([]byte(payload), &u); err != nil {
		return nil
	}
	return &u
}

// Token returns the cached bearer token, or "".
func (s *Store) Token() string {
	if u := s.User(); u != nil {
		return u.Token
	}
	return ""
}

// ClearUser removes the record. Idempotent.
func (s *Store) ClearUser() {
	_, _ = s.db.Exec(`DELETE FROM session WHERE slot = 1`)
	s.notifyUserChange(nil)
}

// RefreshUser saves a freshly fetched profile, carrying the previous token
// forward when the new payload does not include one.
func (s *Store) RefreshUser(u *domain.StoredUser) {
	if u == nil {
		return
	}
	if u.Token == "" {
		if prev := s.User(); prev != nil {
			u.Token = prev.Token
		}
	}
	s.SaveUser(u)
}

// OnUserChange registers a hook invoked after every session mutation.
func (s *Store) OnUserChange(fn func(*domain.StoredUser)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Store) notifyUserChange(u *domain.StoredUser) {
	s.mu.Lock()
	hooks := append(([]func(*domain.StoredUser))(nil), s.listeners...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(u)
	}
}

// CheckLimit reports whether the category is under its ceiling today. The
// rollover is implicit: counters live in a per-day row, so a new day simply
// reads an absent row as all-zero.
func (s *Store) CheckLimit(c domain.Category) bool {
	ceiling := domain.Ceiling(c)
	if ceiling == 0 {
		return false
	}
	return s.Limits().Count(c) < ceiling
}

// IncrementLimit bumps the category by one for today.
func (s *Store) IncrementLimit(c domain.Category) {
	col, ok := usageColumn(c)
	if !ok {
		return
	}
	day := s.today()
	s.ensureDay(day)
	_, _ = s.db.Exec(
		fmt.Sprintf(`UPDATE usage_days SET %s = %s + 1 WHERE day = ?`, col, col),
		day,
	)
}

// Reserve is the atomic check-and-increment: one guarded UPDATE that only
// fires while the counter is under the ceiling.
func (s *Store) Reserve(c domain.Category) error {
	col, ok := usageColumn(c)
	if !ok {
		return domain.ErrUnknownCategory
	}
	day := s.today()
	s.ensureDay(day)
	res, err := s.db.Exec(
		fmt.Sprintf(`UPDATE usage_days SET %s = %s + 1 WHERE day = ? AND %s < ?`, col, col, col),
		day, domain.Ceiling(c),
	)
	if err != nil {
		// Storage failure reads as quota available elsewhere; here the
		// reservation simply did not happen.
		return domain.ErrQuotaExceeded
	}
	affected, err := res.RowsAffected()
	if err != nil || affected == 0 {
		return domain.ErrQuotaExceeded
	}
	return nil
}

// Limits returns today's counters.
func (s *Store) Limits() domain.UsageLimits {
	day := s.today()
	limits := domain.UsageLimits{Date: day}
	row := s.db.QueryRow(
		`SELECT plagiarism, humanizer, bulk FROM usage_days WHERE day = ?`, day,
	)
	_ = row.Scan(&limits.Plagiarism, &limits.Humanizer, &limits.Bulk)
	return limits
}

func (s *Store) ensureDay(day string) {
	_, _ = s.db.Exec(
		`INSERT INTO usage_days (day) VALUES (?) ON CONFLICT(day) DO NOTHING`, day,
	)
}

// AppendActivity records a feature event and trims the retained history.
func (s *Store) AppendActivity(a domain.Activity) domain.Activity {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = s.now()
	}
	_, _ = s.db.Exec(`
INSERT INTO activities (id, type, title, score, word_count, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, string(a.Type), a.Title, a.Score, a.WordCount, a.Timestamp.UTC(),
	)
	_, _ = s.db.Exec(`
DELETE FROM activities WHERE id NOT IN (
	SELECT id FROM activities ORDER BY created_at DESC, id LIMIT 200
)`)
	return a
}

// Activities returns the recorded events, oldest first.
func (s *Store) Activities() []domain.Activity {
	rows, err := s.db.Query(`
SELECT id, type, title, score, word_count, created_at
FROM activities ORDER BY created_at, id`)
	if err != nil {
		return nil
	}
	defer rows.Close()
	var items []domain.Activity
	for rows.Next() {
		var a domain.Activity
		var typ string
		if err := rows.Scan(&a.ID, &typ, &a.Title, &a.Score, &a.WordCount, &a.Timestamp); err != nil {
			continue
		}
		a.Type = domain.ActivityType(typ)
		items = append(items, a)
	}
	return items
}

// FallbackStats derives a dashboard summary from local state, used when the
// backend cannot be reached.
func (s *Store) FallbackStats() domain.StatsSummary {
	return domain.DeriveStats(s.User(), s.Limits(), s.Activities(), s.now())
}

// ResetLimits zeroes today's counters. Used by operator tooling; the normal
// path only resets through the per-day rows.
func (s *Store) ResetLimits() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.db.Exec(`
INSERT INTO usage_days (day, plagiarism, humanizer, bulk) VALUES (?, 0, 0, 0)
ON CONFLICT(day) DO UPDATE SET plagiarism = 0, humanizer = 0, bulk = 0`, s.today())
}

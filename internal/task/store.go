package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/javiermolinar/daystrip/internal/dateutil"
	"github.com/javiermolinar/daystrip/internal/logs"
	"github.com/javiermolinar/daystrip/internal/prefs"
)

// DefaultKey is the preference key that holds the task collection.
const DefaultKey = "tasks"

// seqSuffix names the key, next to the collection key, that holds the
// highest id ever issued.
const seqSuffix = "_seq"

// Store owns the task collection and persists it on every mutation.
// Persistence failures are logged and leave the store usable in memory.
// When the collection cannot be read the session runs on a memory store so
// the unread data is never overwritten.
type Store struct {
	prefs  prefs.Store
	key    string
	logger *slog.Logger
	now    func() time.Time

	mu       sync.RWMutex
	tasks    []Task // sorted by date, then id
	lastID   int64  // highest id ever issued; ids are never reused
	savedID  int64  // lastID as last written to the seq key
	degraded bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for load and persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logs.OrDiscard(l)
	}
}

// WithKey overrides the preference key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock sets the clock used to default a draft's date to today.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open loads the collection from p. A nil p keeps the collection in memory.
// Malformed data is discarded and its key removed.
func Open(ctx context.Context, p prefs.Store, opts ...Option) *Store {
	if p == nil {
		p = prefs.NewMemory()
	}
	s := &Store{
		prefs:  p,
		key:    DefaultKey,
		logger: logs.Discard(),
		now:    time.Now,
		tasks:  []Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load(ctx)
	s.loadSeq(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	raw, err := s.prefs.Get(ctx, s.key)
	if errors.Is(err, prefs.ErrNotFound) {
		return
	}
	if err != nil {
		s.logger.Warn("tasks_read_failed", "key", s.key, "error", err)
		s.degraded = true
		s.prefs = prefs.NewMemory()
		return
	}

	tasks, dropped, err := decodeCollection(raw)
	if err != nil {
		s.logger.Warn("tasks_malformed", "key", s.key, "error", err)
		if err := s.prefs.Remove(ctx, s.key); err != nil {
			s.logger.Warn("tasks_remove_failed", "key", s.key, "error", err)
			s.degraded = true
		}
		return
	}
	if dropped > 0 {
		s.logger.Warn("tasks_dropped_invalid", "key", s.key, "dropped", dropped)
	}
	s.tasks = tasks
}

func (s *Store) seqKey() string {
	return s.key + seqSuffix
}

// loadSeq restores the id high-water mark. A missing or unreadable value
// falls back to the highest loaded id.
func (s *Store) loadSeq(ctx context.Context) {
	for _, t := range s.tasks {
		s.lastID = max(s.lastID, t.ID)
	}
	raw, err := s.prefs.Get(ctx, s.seqKey())
	if errors.Is(err, prefs.ErrNotFound) {
		return
	}
	if err != nil {
		s.logger.Warn("tasks_seq_read_failed", "key", s.seqKey(), "error", err)
		return
	}
	var seq int64
	if err := json.Unmarshal(raw, &seq); err != nil || seq < 0 {
		s.logger.Warn("tasks_seq_malformed", "key", s.seqKey(), "value", string(raw))
		return
	}
	s.savedID = seq
	s.lastID = max(s.lastID, seq)
}

// storedTask is the persisted shape. Date is kept as a string so a bad date
// drops one entry instead of the whole collection.
type storedTask struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Date        string `json:"date"`
}

func decodeCollection(raw []byte) ([]Task, int, error) {
	var stored []storedTask
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, 0, fmt.Errorf("decoding tasks: %w", err)
	}

	tasks := make([]Task, 0, len(stored))
	seen := make(map[int64]bool, len(stored))
	dropped := 0
	for _, st := range stored {
		date, err := dateutil.Parse(st.Date)
		t := Task{
			ID:          st.ID,
			Title:       st.Title,
			Description: st.Description,
			Completed:   st.Completed,
			Date:        date,
		}
		if err != nil || !t.valid() || seen[t.ID] {
			dropped++
			continue
		}
		seen[t.ID] = true
		tasks = append(tasks, t)
	}
	slices.SortFunc(tasks, less)
	return tasks, dropped, nil
}

func encodeCollection(tasks []Task) ([]byte, error) {
	stored := make([]storedTask, len(tasks))
	for i, t := range tasks {
		stored[i] = storedTask{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Completed:   t.Completed,
			Date:        t.Date.Key(),
		}
	}
	return json.Marshal(stored)
}

// persist writes the whole collection. An empty collection removes the key.
// Callers must hold s.mu.
func (s *Store) persist(ctx context.Context) {
	s.persistSeq(ctx)
	if len(s.tasks) == 0 {
		if err := s.prefs.Remove(ctx, s.key); err != nil {
			s.logger.Warn("tasks_persist_failed", "key", s.key, "op", "remove", "error", err)
			s.degraded = true
		}
		return
	}

	data, err := encodeCollection(s.tasks)
	if err != nil {
		s.logger.Warn("tasks_encode_failed", "error", err)
		s.degraded = true
		return
	}
	if err := s.prefs.Set(ctx, s.key, data); err != nil {
		s.logger.Warn("tasks_persist_failed", "key", s.key, "op", "set", "count", len(s.tasks), "error", err)
		s.degraded = true
		return
	}
	s.logger.Debug("tasks_persisted", "key", s.key, "count", len(s.tasks))
}

// persistSeq writes the id high-water mark when it has moved.
func (s *Store) persistSeq(ctx context.Context) {
	if s.lastID == s.savedID {
		return
	}
	data, err := json.Marshal(s.lastID)
	if err != nil {
		s.logger.Warn("tasks_encode_failed", "key", s.seqKey(), "error", err)
		s.degraded = true
		return
	}
	if err := s.prefs.Set(ctx, s.seqKey(), data); err != nil {
		s.logger.Warn("tasks_persist_failed", "key", s.seqKey(), "op", "set", "error", err)
		s.degraded = true
		return
	}
	s.savedID = s.lastID
}

// Degraded reports whether a read or write to the preference store failed.
func (s *Store) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// List returns every task sorted by date, then id.
func (s *Store) List() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

// ByDate returns the tasks dated d, sorted by id.
func (s *Store) ByDate(d dateutil.Date) []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byDateLocked(d)
}

func (s *Store) byDateLocked(d dateutil.Date) []Task {
	out := []Task{}
	for _, t := range s.tasks {
		if t.Date.Equal(d) {
			out = append(out, t)
		}
	}
	return out
}

// InRange returns the tasks within r, sorted by date, then id.
func (s *Store) InRange(r dateutil.DateRange) []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Task{}
	for _, t := range s.tasks {
		if r.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// Day returns the tasks of d grouped as a Day.
func (s *Store) Day(d dateutil.Date) *Day {
	return NewDay(d, s.ByDate(d))
}

// Marks returns the completed and pending counts for d.
func (s *Store) Marks(d dateutil.Date) DayMarks {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return marksOf(s.byDateLocked(d))
}

// Get returns the task with the given id.
func (s *Store) Get(id int64) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

func (s *Store) indexLocked(id int64) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

// nextIDLocked issues a fresh id. Ids of deleted tasks are not reused.
func (s *Store) nextIDLocked() int64 {
	s.lastID++
	return s.lastID
}

// Create validates the draft, assigns the next id and persists.
func (s *Store) Create(ctx context.Context, d Draft) (Task, error) {
	d, err := d.Validate()
	if err != nil {
		return Task{}, err
	}
	if d.Date.IsZero() {
		d.Date = dateutil.Today(s.now())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := Task{
		ID:          s.nextIDLocked(),
		Title:       d.Title,
		Description: d.Description,
		Completed:   d.Completed,
		Date:        d.Date,
	}
	s.insertLocked(t)
	s.persist(ctx)
	return t, nil
}

func (s *Store) insertLocked(t Task) {
	i, _ := slices.BinarySearchFunc(s.tasks, t, less)
	s.tasks = slices.Insert(s.tasks, i, t)
}

// Update applies the patch to the task with the given id and persists.
func (s *Store) Update(ctx context.Context, id int64, p Patch) (Task, error) {
	if p.Title != nil {
		title, err := NormalizeTitle(*p.Title)
		if err != nil {
			return Task{}, err
		}
		p.Title = &title
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	updated := p.apply(s.tasks[i])
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.insertLocked(updated)
	s.persist(ctx)
	return updated, nil
}

// ToggleCompleted flips the completed flag of a task and persists.
func (s *Store) ToggleCompleted(ctx context.Context, id int64) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.persist(ctx)
	return s.tasks[i], nil
}

// Delete removes a task and persists.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.persist(ctx)
	return nil
}

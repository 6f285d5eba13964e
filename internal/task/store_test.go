package task

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/daystrip/internal/dateutil"
	"github.com/javiermolinar/daystrip/internal/prefs"
)

var fixedNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)

func newTestStore(t *testing.T) (*Store, *prefs.Memory) {
	t.Helper()
	mem := prefs.NewMemory()
	s := Open(context.Background(), mem, WithClock(func() time.Time { return fixedNow }))
	return s, mem
}

func storedTasks(t *testing.T, mem prefs.Store) ([]storedTask, bool) {
	t.Helper()
	raw, err := mem.Get(context.Background(), DefaultKey)
	if errors.Is(err, prefs.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	var out []storedTask
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("stored value is not a task array: %v\n%s", err, raw)
	}
	return out, true
}

// flakyStore fails writes while broken is set.
type flakyStore struct {
	*prefs.Memory
	broken bool
}

func (f *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if f.broken {
		return errors.New("quota exceeded")
	}
	return f.Memory.Set(ctx, key, value)
}

// unreadableStore fails reads while keeping writes.
type unreadableStore struct {
	*prefs.Memory
}

func (u unreadableStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("storage unavailable")
}

func TestStore_CreateByDateDeleteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)
	d := dateutil.New(2024, 6, 1)

	created, err := s.Create(ctx, Draft{Title: "X", Date: d})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got := s.ByDate(d)
	if len(got) != 1 || got[0].ID != created.ID || got[0].Title != "X" {
		t.Fatalf("ByDate = %+v, want the created task", got)
	}
	if stored, ok := storedTasks(t, mem); !ok || len(stored) != 1 {
		t.Fatalf("stored = %+v, %v; want one task", stored, ok)
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := s.ByDate(d); len(got) != 0 {
		t.Errorf("ByDate after delete = %+v, want empty", got)
	}
	if _, ok := storedTasks(t, mem); ok {
		t.Error("tasks key should be removed when the collection becomes empty")
	}
}

func TestStore_CreateRejectsEmptyTitle(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)
	if _, err := s.Create(ctx, Draft{Title: "keep", Date: dateutil.New(2024, 6, 1)}); err != nil {
		t.Fatal(err)
	}
	before := s.List()
	beforeRaw, _ := mem.Get(ctx, DefaultKey)

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := s.Create(ctx, Draft{Title: title, Date: dateutil.New(2024, 6, 1)})
		if !errors.Is(err, ErrEmptyTitle) {
			t.Errorf("Create(%q) error = %v, want ErrEmptyTitle", title, err)
		}
	}

	after := s.List()
	if len(after) != len(before) {
		t.Fatalf("collection changed: %d -> %d tasks", len(before), len(after))
	}
	afterRaw, _ := mem.Get(ctx, DefaultKey)
	if string(afterRaw) != string(beforeRaw) {
		t.Errorf("persisted value changed:\n%s\n%s", beforeRaw, afterRaw)
	}
}

func TestStore_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	first, err := s.Create(ctx, Draft{Title: "  padded  "})
	if err != nil {
		t.Fatal(err)
	}
	if first.Title != "padded" {
		t.Errorf("title = %q, want trimmed", first.Title)
	}
	if first.Date.Key() != "2024-06-01" {
		t.Errorf("date = %s, want today 2024-06-01", first.Date)
	}
	if first.ID != 1 {
		t.Errorf("first id = %d, want 1", first.ID)
	}

	second, _ := s.Create(ctx, Draft{Title: "b"})
	if second.ID != 2 {
		t.Errorf("second id = %d, want 2", second.ID)
	}
}

func TestStore_IDIsMaxPlusOne(t *testing.T) {
	ctx := context.Background()
	mem := prefs.NewMemory()
	raw := `[{"id":1718000000000,"title":"old","description":"","completed":false,"date":"2024-06-10"}]`
	if err := mem.Set(ctx, DefaultKey, []byte(raw)); err != nil {
		t.Fatal(err)
	}
	s := Open(ctx, mem)

	created, err := s.Create(ctx, Draft{Title: "new", Date: dateutil.New(2024, 6, 10)})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID != 1718000000001 {
		t.Errorf("id = %d, want 1718000000001", created.ID)
	}
}

func TestStore_IDsNotReusedAfterDelete(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)

	a, _ := s.Create(ctx, Draft{Title: "a"})
	b, _ := s.Create(ctx, Draft{Title: "b"})
	if err := s.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	c, _ := s.Create(ctx, Draft{Title: "c"})
	if c.ID != 3 {
		t.Fatalf("ids a=%d b=%d c=%d, want c=3", a.ID, b.ID, c.ID)
	}

	// The high-water mark survives a reopen, even with no tasks left.
	for _, id := range []int64{a.ID, c.ID} {
		if err := s.Delete(ctx, id); err != nil {
			t.Fatalf("Delete(%d): %v", id, err)
		}
	}
	reopened := Open(ctx, mem)
	d, _ := reopened.Create(ctx, Draft{Title: "d"})
	if d.ID != 4 {
		t.Errorf("id after reopen = %d, want 4", d.ID)
	}

	imported := Open(ctx, mem)
	if err := imported.CreateMany(ctx, []Draft{{Title: "e"}, {Title: "f"}}); err != nil {
		t.Fatalf("CreateMany: %v", err)
	}
	var ids []int64
	for _, tsk := range imported.List() {
		ids = append(ids, tsk.ID)
	}
	if len(ids) != 3 || ids[0] != 4 || ids[1] != 5 || ids[2] != 6 {
		t.Errorf("ids = %v, want [4 5 6]", ids)
	}
}

func TestOpen_ReadFailureKeepsPersistedData(t *testing.T) {
	ctx := context.Background()
	mem := prefs.NewMemory()
	seeded := Open(ctx, mem)
	for _, title := range []string{"a", "b", "c"} {
		if _, err := seeded.Create(ctx, Draft{Title: title, Date: dateutil.New(2024, 6, 1)}); err != nil {
			t.Fatal(err)
		}
	}

	s := Open(ctx, unreadableStore{Memory: mem})
	if !s.Degraded() {
		t.Fatal("Degraded() = false after a failed read")
	}
	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Len())
	}
	created, err := s.Create(ctx, Draft{Title: "session only"})
	if err != nil {
		t.Fatalf("Create should succeed in memory: %v", err)
	}
	if _, ok := s.Get(created.ID); !ok {
		t.Error("task should exist in memory")
	}
	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatal(err)
	}

	stored, ok := storedTasks(t, mem)
	if !ok || len(stored) != 3 {
		t.Fatalf("stored = %+v, %v; want the 3 original tasks", stored, ok)
	}
}

func TestStore_Update(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)
	created, _ := s.Create(ctx, Draft{Title: "draft", Description: "d", Date: dateutil.New(2024, 6, 1)})

	t.Run("title and date", func(t *testing.T) {
		newDate := dateutil.New(2024, 6, 5)
		got, err := s.Update(ctx, created.ID, Patch{Title: Ptr(" final "), Date: &newDate})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if got.Title != "final" || !got.Date.Equal(newDate) || got.Description != "d" {
			t.Errorf("got %+v", got)
		}
		if len(s.ByDate(dateutil.New(2024, 6, 1))) != 0 || len(s.ByDate(newDate)) != 1 {
			t.Error("task should have moved days")
		}
		stored, _ := storedTasks(t, mem)
		if stored[0].Date != "2024-06-05" || stored[0].Title != "final" {
			t.Errorf("stored = %+v", stored[0])
		}
	})

	t.Run("empty title rejected", func(t *testing.T) {
		before, _ := s.Get(created.ID)
		_, err := s.Update(ctx, created.ID, Patch{Title: Ptr("  "), Completed: Ptr(true)})
		if !errors.Is(err, ErrEmptyTitle) {
			t.Fatalf("error = %v, want ErrEmptyTitle", err)
		}
		after, _ := s.Get(created.ID)
		if after != before {
			t.Errorf("task changed on rejected update: %+v -> %+v", before, after)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.Update(ctx, 999, Patch{Completed: Ptr(true)})
		if !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("error = %v, want ErrTaskNotFound", err)
		}
	})
}

func TestStore_ToggleCompletedAndMarks(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	d := dateutil.New(2024, 6, 1)
	a, _ := s.Create(ctx, Draft{Title: "a", Date: d})
	_, _ = s.Create(ctx, Draft{Title: "b", Date: d})

	if m := s.Marks(d); m.Completed != 0 || m.Pending != 2 {
		t.Fatalf("Marks = %+v, want 0/2", m)
	}

	toggled, err := s.ToggleCompleted(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !toggled.Completed {
		t.Error("task should be completed")
	}
	if m := s.Marks(d); m.Completed != 1 || m.Pending != 1 {
		t.Errorf("Marks = %+v, want 1/1", m)
	}
	if m := s.Marks(d.AddDays(1)); m.HasTasks() {
		t.Errorf("Marks on empty day = %+v", m)
	}

	if _, err := s.ToggleCompleted(ctx, 42); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("error = %v, want ErrTaskNotFound", err)
	}
	if err := s.Delete(ctx, 42); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Delete error = %v, want ErrTaskNotFound", err)
	}
}

func TestStore_ListSorted(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_, _ = s.Create(ctx, Draft{Title: "late", Date: dateutil.New(2024, 6, 9)})
	_, _ = s.Create(ctx, Draft{Title: "early", Date: dateutil.New(2024, 6, 2)})
	_, _ = s.Create(ctx, Draft{Title: "early too", Date: dateutil.New(2024, 6, 2)})

	got := s.List()
	want := []string{"early", "early too", "late"}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("List()[%d] = %q, want %q", i, got[i].Title, title)
		}
	}

	r := dateutil.DateRange{Start: dateutil.New(2024, 6, 1), End: dateutil.New(2024, 6, 5)}
	if n := len(s.InRange(r)); n != 2 {
		t.Errorf("InRange = %d tasks, want 2", n)
	}
}

func TestOpen_LoadsPersistedData(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name       string
		raw        string
		wantCount  int
		wantKeySet bool
	}{
		{name: "empty array", raw: `[]`, wantCount: 0, wantKeySet: true},
		{name: "null", raw: `null`, wantCount: 0, wantKeySet: true},
		{name: "malformed json", raw: `[{"id":1,`, wantCount: 0, wantKeySet: false},
		{name: "wrong shape", raw: `{"tasks":[]}`, wantCount: 0, wantKeySet: false},
		{name: "wrong element type", raw: `["a","b"]`, wantCount: 0, wantKeySet: false},
		{
			name:       "invalid entries dropped",
			raw:        `[{"id":1,"title":"ok","description":"","completed":true,"date":"2024-06-01"},{"id":2,"title":"  ","date":"2024-06-01"},{"id":3,"title":"bad date","date":"June 1"},{"id":1,"title":"dup","date":"2024-06-01"}]`,
			wantCount:  1,
			wantKeySet: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := prefs.NewMemory()
			if err := mem.Set(ctx, DefaultKey, []byte(tt.raw)); err != nil {
				t.Fatal(err)
			}
			s := Open(ctx, mem)

			if s.Len() != tt.wantCount {
				t.Errorf("Len() = %d, want %d", s.Len(), tt.wantCount)
			}
			_, err := mem.Get(ctx, DefaultKey)
			if keySet := err == nil; keySet != tt.wantKeySet {
				t.Errorf("key present = %v, want %v", keySet, tt.wantKeySet)
			}
			if s.Degraded() {
				t.Error("store should not be degraded")
			}
		})
	}
}

func TestStore_ReloadSeesPersistedState(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)
	created, _ := s.Create(ctx, Draft{Title: "X", Description: "y", Completed: true, Date: dateutil.New(2024, 6, 1)})

	reopened := Open(ctx, mem)
	got, ok := reopened.Get(created.ID)
	if !ok {
		t.Fatal("task not found after reopen")
	}
	if got != created {
		t.Errorf("got %+v, want %+v", got, created)
	}
}

func TestStore_WriteFailureDegrades(t *testing.T) {
	ctx := context.Background()
	fs := &flakyStore{Memory: prefs.NewMemory(), broken: true}
	s := Open(ctx, fs)

	created, err := s.Create(ctx, Draft{Title: "X", Date: dateutil.New(2024, 6, 1)})
	if err != nil {
		t.Fatalf("Create should succeed in memory: %v", err)
	}
	if !s.Degraded() {
		t.Error("Degraded() = false after failed write")
	}
	if _, ok := s.Get(created.ID); !ok {
		t.Error("task should exist in memory")
	}

	fs.broken = false
	if _, err := s.ToggleCompleted(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	stored, ok := storedTasks(t, fs)
	if !ok || len(stored) != 1 || !stored[0].Completed {
		t.Errorf("stored = %+v, %v; want the toggled task", stored, ok)
	}
}

func TestStore_Search(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_, _ = s.Create(ctx, Draft{Title: "Buy milk", Date: dateutil.New(2024, 6, 1)})
	_, _ = s.Create(ctx, Draft{Title: "Call mom", Description: "about the trip", Date: dateutil.New(2024, 6, 2)})
	_, _ = s.Create(ctx, Draft{Title: "Write report", Date: dateutil.New(2024, 6, 3)})

	if got := s.Search("  "); got != nil {
		t.Errorf("empty query = %+v, want nil", got)
	}

	got := s.Search("milk")
	if len(got) != 1 || got[0].Title != "Buy milk" {
		t.Errorf("Search(milk) = %+v", got)
	}

	got = s.Search("trip")
	if len(got) != 1 || got[0].Title != "Call mom" {
		t.Errorf("Search(trip) should match the description, got %+v", got)
	}

	if got := s.Search("zzz"); len(got) != 0 {
		t.Errorf("Search(zzz) = %+v, want none", got)
	}
}

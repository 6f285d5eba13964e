package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/daystrip/internal/dateutil"
	"github.com/javiermolinar/daystrip/internal/task"
)

// Tasks are keyed by calendar date, so the day a task lands on depends only on
// the wall clock of the zone it was created in, never on UTC.
func TestTodayFollowsLocalWallClock(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "daystrip.db")

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{
			name: "late evening west of UTC",
			now:  time.Date(2025, 3, 9, 23, 30, 0, 0, time.FixedZone("PST", -8*3600)),
			want: "2025-03-09",
		},
		{
			name: "early morning east of UTC",
			now:  time.Date(2025, 3, 10, 0, 15, 0, 0, time.FixedZone("AEDT", 11*3600)),
			want: "2025-03-10",
		},
		{
			name: "utc midnight",
			now:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			want: "2025-03-10",
		},
	}

	p := openPrefs(t, path)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.now
			store := task.Open(ctx, p, task.WithClock(func() time.Time { return now }))
			created, err := store.Create(ctx, task.Draft{Title: tt.name})
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			t.Logf("created #%d at %v -> %s", created.ID, now, created.Date.Key())

			if created.Date.Key() != tt.want {
				t.Fatalf("date = %s, want %s", created.Date.Key(), tt.want)
			}

			reloaded := task.Open(ctx, p)
			got, ok := reloaded.Get(created.ID)
			if !ok {
				t.Fatalf("task #%d missing after reload", created.ID)
			}
			if !got.Date.Equal(dateutil.Today(now)) {
				t.Fatalf("reloaded date = %s, want %s", got.Date, dateutil.Today(now))
			}
		})
	}
}

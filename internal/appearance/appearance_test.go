package appearance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeProbe returns queued values; the last value repeats.
type fakeProbe struct {
	mu     sync.Mutex
	values []bool
	err    error
}

func (f *fakeProbe) set(dark bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = []bool{dark}
}

func (f *fakeProbe) probe(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	v := f.values[0]
	if len(f.values) > 1 {
		f.values = f.values[1:]
	}
	return v, nil
}

func TestParsers(t *testing.T) {
	if !parseDarwin("Dark") {
		t.Error("parseDarwin(Dark) = false")
	}
	if parseDarwin("") {
		t.Error("parseDarwin(empty) = true")
	}

	gnome := []struct {
		out  string
		want bool
	}{
		{"'prefer-dark'", true},
		{"'default'", false},
		{"'prefer-light'", false},
	}
	for _, tt := range gnome {
		if got := parseGnome(tt.out); got != tt.want {
			t.Errorf("parseGnome(%q) = %v, want %v", tt.out, got, tt.want)
		}
	}

	out := "\r\nHKEY_CURRENT_USER\\Software\\Microsoft\\Windows\\CurrentVersion\\Themes\\Personalize\r\n    AppsUseLightTheme    REG_DWORD    0x0\r\n"
	dark, err := parseWindows(out)
	if err != nil || !dark {
		t.Errorf("parseWindows(0x0) = (%v, %v), want (true, nil)", dark, err)
	}
	dark, err = parseWindows("    AppsUseLightTheme    REG_DWORD    0x1")
	if err != nil || dark {
		t.Errorf("parseWindows(0x1) = (%v, %v), want (false, nil)", dark, err)
	}
	if _, err := parseWindows("garbage"); err == nil {
		t.Error("parseWindows(garbage) expected error")
	}
}

func TestProbeGnome_UsesCommand(t *testing.T) {
	orig := commandOutput
	t.Cleanup(func() { commandOutput = orig })

	var gotName string
	commandOutput = func(_ context.Context, name string, _ ...string) (string, error) {
		gotName = name
		return "'prefer-dark'", nil
	}

	dark, err := probeGnome(context.Background())
	if err != nil || !dark {
		t.Fatalf("probeGnome = (%v, %v), want (true, nil)", dark, err)
	}
	if gotName != "gsettings" {
		t.Errorf("ran %q, want gsettings", gotName)
	}
}

func TestParseForced(t *testing.T) {
	tests := []struct {
		in       string
		wantDark bool
		wantOK   bool
	}{
		{"dark", true, true},
		{"LIGHT", false, true},
		{"auto", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		dark, ok := ParseForced(tt.in)
		if dark != tt.wantDark || ok != tt.wantOK {
			t.Errorf("ParseForced(%q) = (%v, %v), want (%v, %v)", tt.in, dark, ok, tt.wantDark, tt.wantOK)
		}
	}
}

func TestResolveProbe_EnvWins(t *testing.T) {
	t.Setenv(EnvSystemTheme, "light")
	dark, err := ResolveProbe("dark")(context.Background())
	if err != nil || dark {
		t.Errorf("probe = (%v, %v), want (false, nil)", dark, err)
	}
}

func TestResolveProbe_Configured(t *testing.T) {
	t.Setenv(EnvSystemTheme, "")
	dark, err := ResolveProbe("dark")(context.Background())
	if err != nil || !dark {
		t.Errorf("probe = (%v, %v), want (true, nil)", dark, err)
	}
}

func TestInitial_UsesProbe(t *testing.T) {
	if !Initial(context.Background(), Forced(true)) {
		t.Error("Initial(Forced(true)) = false")
	}
	if Initial(context.Background(), Forced(false)) {
		t.Error("Initial(Forced(false)) = true")
	}
}

func TestWatcher_PollNotifiesOnChange(t *testing.T) {
	fp := &fakeProbe{values: []bool{false, false, true, true, false}}
	w := NewWatcher(fp.probe, time.Hour, WithInitial(false))

	var got []bool
	w.Subscribe(func(dark bool) { got = append(got, dark) })

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		w.Poll(ctx)
	}

	want := []bool{true, false}
	if len(got) != len(want) {
		t.Fatalf("notifications = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification %d = %v, want %v", i, got[i], want[i])
		}
	}
	if w.PrefersDark() {
		t.Error("PrefersDark() = true, want false")
	}
}

func TestWatcher_ProbeErrorKeepsValue(t *testing.T) {
	fp := &fakeProbe{err: errors.New("no gsettings")}
	w := NewWatcher(fp.probe, time.Hour, WithInitial(true))

	called := false
	w.Subscribe(func(bool) { called = true })

	if w.Poll(context.Background()) {
		t.Error("Poll reported a change on probe error")
	}
	if called || !w.PrefersDark() {
		t.Error("probe error should not change the preference")
	}
}

func TestWatcher_Unsubscribe(t *testing.T) {
	fp := &fakeProbe{values: []bool{false}}
	w := NewWatcher(fp.probe, time.Hour)

	calls := 0
	unsubscribe := w.Subscribe(func(bool) { calls++ })
	unsubscribe()
	unsubscribe()

	fp.set(true)
	w.Poll(context.Background())
	if calls != 0 {
		t.Errorf("unsubscribed listener called %d times", calls)
	}
}

func TestWatcher_RunStopsOnCancel(t *testing.T) {
	fp := &fakeProbe{values: []bool{false}}
	w := NewWatcher(fp.probe, 5*time.Millisecond)

	changes := make(chan bool, 1)
	w.Subscribe(func(dark bool) {
		select {
		case changes <- dark:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	fp.set(true)
	select {
	case dark := <-changes:
		if !dark {
			t.Error("expected dark notification")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no notification from Run")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

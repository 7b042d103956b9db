package platform

import (
	"errors"
	"testing"
)

type fakeBackend struct {
	active    WindowID
	activeErr error
	area      Rect
	titleErr  error

	titles  map[WindowID]string
	resized map[WindowID]Rect
}

func newFakeBackend(active WindowID, area Rect) *fakeBackend {
	return &fakeBackend{
		active:  active,
		area:    area,
		titles:  map[WindowID]string{},
		resized: map[WindowID]Rect{},
	}
}

func (f *fakeBackend) ActiveWindow() (WindowID, error) { return f.active, f.activeErr }
func (f *fakeBackend) WorkArea(WindowID) (Rect, error) { return f.area, nil }
func (f *fakeBackend) Disconnect()                     {}

func (f *fakeBackend) SetTitle(id WindowID, title string) error {
	if f.titleErr != nil {
		return f.titleErr
	}
	f.titles[id] = title
	return nil
}

func (f *fakeBackend) MoveResize(id WindowID, bounds Rect) error {
	f.resized[id] = bounds
	return nil
}

func TestCentered(t *testing.T) {
	tests := []struct {
		name string
		area Rect
		w, h int
		want Rect
	}{
		{
			name: "fits",
			area: Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
			w:    300, h: 100,
			want: Rect{X: 810, Y: 490, Width: 300, Height: 100},
		},
		{
			name: "offset monitor",
			area: Rect{X: 1920, Y: 30, Width: 1280, Height: 994},
			w:    300, h: 100,
			want: Rect{X: 2410, Y: 477, Width: 300, Height: 100},
		},
		{
			name: "clamped",
			area: Rect{X: 10, Y: 20, Width: 200, Height: 80},
			w:    300, h: 100,
			want: Rect{X: 10, Y: 20, Width: 200, Height: 80},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Centered(tt.area, tt.w, tt.h); got != tt.want {
				t.Fatalf("Centered = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPrepareHostTitleOnly(t *testing.T) {
	b := newFakeBackend(42, Rect{Width: 1000, Height: 800})

	if err := PrepareHost(b, HostOptions{Title: "System Tool", Width: 300, Height: 100}); err != nil {
		t.Fatalf("PrepareHost: %v", err)
	}
	if got := b.titles[42]; got != "System Tool" {
		t.Fatalf("title = %q, want System Tool", got)
	}
	if len(b.resized) != 0 {
		t.Fatalf("window resized without Resize: %+v", b.resized)
	}
}

func TestPrepareHostResize(t *testing.T) {
	b := newFakeBackend(7, Rect{Width: 1000, Height: 800})

	if err := PrepareHost(b, HostOptions{Title: "System Tool", Width: 300, Height: 100, Resize: true}); err != nil {
		t.Fatalf("PrepareHost: %v", err)
	}
	want := Rect{X: 350, Y: 350, Width: 300, Height: 100}
	if got := b.resized[7]; got != want {
		t.Fatalf("bounds = %+v, want %+v", got, want)
	}
}

func TestPrepareHostErrors(t *testing.T) {
	boom := errors.New("boom")

	b := newFakeBackend(0, Rect{})
	b.activeErr = boom
	if err := PrepareHost(b, HostOptions{Title: "x"}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}

	b = newFakeBackend(1, Rect{})
	b.titleErr = boom
	if err := PrepareHost(b, HostOptions{Title: "x", Resize: true}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
	if len(b.resized) != 0 {
		t.Fatal("resize attempted after title failure")
	}
}

package platform

import "fmt"

// HostOptions controls how the terminal window hosting the widget is prepared.
type HostOptions struct {
	Title  string
	Width  int
	Height int
	// Resize also sizes the window to Width x Height and centers it on its
	// display's work area.
	Resize bool
}

// PrepareHost names the focused window, which is the terminal the widget was
// launched from, and optionally resizes and centers it.
func PrepareHost(b Backend, opts HostOptions) error {
	wid, err := b.ActiveWindow()
	if err != nil {
		return fmt.Errorf("find host window: %w", err)
	}

	if opts.Title != "" {
		if err := b.SetTitle(wid, opts.Title); err != nil {
			return fmt.Errorf("set host window title: %w", err)
		}
	}

	if !opts.Resize {
		return nil
	}

	area, err := b.WorkArea(wid)
	if err != nil {
		return fmt.Errorf("find host display: %w", err)
	}
	if err := b.MoveResize(wid, Centered(area, opts.Width, opts.Height)); err != nil {
		return fmt.Errorf("resize host window: %w", err)
	}
	return nil
}

// Centered returns a width x height rectangle centered in area. Dimensions
// larger than area are clamped to it.
func Centered(area Rect, width, height int) Rect {
	width = min(width, area.Width)
	height = min(height, area.Height)
	return Rect{
		X:      area.X + (area.Width-width)/2,
		Y:      area.Y + (area.Height-height)/2,
		Width:  width,
		Height: height,
	}
}

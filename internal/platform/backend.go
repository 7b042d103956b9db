package platform

import "errors"

// ErrUnsupported is returned by Connect on platforms without a window backend.
var ErrUnsupported = errors.New("host window management is not supported on this platform")

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Backend abstracts the window-system operations used on the terminal window
// that hosts the widget.
type Backend interface {
	ActiveWindow() (WindowID, error)
	// WorkArea returns the usable area of the display showing windowID.
	WorkArea(windowID WindowID) (Rect, error)
	SetTitle(windowID WindowID, title string) error
	MoveResize(windowID WindowID, bounds Rect) error
	Disconnect()
}

//go:build windows

package display

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	procGetCursorPos = user32.NewProc("GetCursorPos")
	procSetCursorPos = user32.NewProc("SetCursorPos")
)

// point mirrors the Win32 POINT struct.
type point struct {
	X, Y int32
}

// systemCursor drives the pointer through user32.
type systemCursor struct{}

func (systemCursor) Position() (int32, int32, error) {
	var p point
	r, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&p)))
	if r == 0 {
		return 0, 0, err
	}
	return p.X, p.Y, nil
}

func (systemCursor) MoveTo(x, y int32) error {
	r, _, err := procSetCursorPos.Call(uintptr(x), uintptr(y))
	if r == 0 {
		return err
	}
	return nil
}

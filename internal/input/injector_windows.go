//go:build windows

package input

import (
	"unsafe"

	"github.com/lxn/win"
)

const (
	mouseEventMove     = 0x0001
	mouseEventLeftDown = 0x0002
	mouseEventLeftUp   = 0x0004
)

// mouseInput mirrors the Win32 INPUT structure for mouse events.
type mouseInput struct {
	itype                  uint32
	x, y                   int32
	mousedata, flags, time uint32
	extrainfo              uintptr
}

// winInjector emits pointer events through SendInput.
type winInjector struct{}

// NewInjector returns the native injector for this platform.
func NewInjector() (Injector, error) {
	return winInjector{}, nil
}

func send(in mouseInput) error {
	win.SendInput(1, unsafe.Pointer(&in), int32(unsafe.Sizeof(in)))
	return nil
}

func (winInjector) MoveRelative(dx, dy int) error {
	return send(mouseInput{
		itype: 0, // mouse
		x:     int32(dx),
		y:     int32(dy),
		flags: mouseEventMove,
	})
}

func (winInjector) ButtonDown() error {
	return send(mouseInput{itype: 0, flags: mouseEventLeftDown})
}

func (winInjector) ButtonUp() error {
	return send(mouseInput{itype: 0, flags: mouseEventLeftUp})
}

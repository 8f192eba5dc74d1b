package utils

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// The X11 connection is only opened when the pointer is read from the
// desktop root, i.e. when running behind other windows as a wallpaper.
var (
	XConn   *xgb.Conn
	XRoot   xproto.Window
	XWidth  int
	XHeight int
)

func InitX11() error {
	var err error
	XConn, err = xgb.NewConn()
	if err != nil {
		return err
	}

	screen := xproto.Setup(XConn).DefaultScreen(XConn)
	XRoot = screen.Root
	XWidth = int(screen.WidthInPixels)
	XHeight = int(screen.HeightInPixels)
	Debug("X11: root window %d, %dx%d", XRoot, XWidth, XHeight)
	return nil
}

func CloseX11() {
	if XConn != nil {
		XConn.Close()
		XConn = nil
	}
}

// GetGlobalMousePosition returns the pointer position on the root window.
func GetGlobalMousePosition() (int, int, error) {
	if XConn == nil {
		if err := InitX11(); err != nil {
			return 0, 0, err
		}
	}

	reply, err := xproto.QueryPointer(XConn, XRoot).Reply()
	if err != nil {
		return 0, 0, err
	}

	return int(reply.RootX), int(reply.RootY), nil
}

// NormalizePointer maps a pixel position on a w×h surface to -1..1 on both
// axes, the range parallax offsets are computed from.
func NormalizePointer(x, y float64, w, h int) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	return x/float64(w)*2 - 1, y/float64(h)*2 - 1
}

package output

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Values accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ParseColorMode validates a --color value. Empty means auto.
func ParseColorMode(mode string) (string, error) {
	switch mode {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways, ColorNever:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid --color value %q; use auto, always or never", mode)
	}
}

// ResolveColorMode reports whether output written to w should be styled.
// In auto mode styling needs a terminal and an unset NO_COLOR.
func ResolveColorMode(mode string, w io.Writer) bool {
	switch mode {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return IsTTY(w)
}

// IsTTY reports whether w is a terminal. Only *os.File values can be.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

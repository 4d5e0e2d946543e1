package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: ColorAuto},
		{in: "auto", want: ColorAuto},
		{in: "always", want: ColorAlways},
		{in: "never", want: ColorNever},
		{in: "sometimes", wantErr: true},
		{in: "NEVER", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseColorMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColorMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColorMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveColorMode_Buffer(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		mode string
		want bool
	}{
		{ColorNever, false},
		{ColorAlways, true},
		{ColorAuto, false},
	}
	for _, tt := range tests {
		if got := ResolveColorMode(tt.mode, &buf); got != tt.want {
			t.Errorf("ResolveColorMode(%q, buffer) = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestResolveColorMode_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	if ResolveColorMode(ColorAuto, &buf) {
		t.Error("auto mode should not style output when NO_COLOR is set")
	}
	if !ResolveColorMode(ColorAlways, &buf) {
		t.Error("always mode should ignore NO_COLOR")
	}
}

func TestIsTTY_Buffer(t *testing.T) {
	if IsTTY(new(bytes.Buffer)) {
		t.Error("IsTTY(buffer) should return false")
	}
}

func TestPrinterStyles_FollowColorMode(t *testing.T) {
	empty := lipgloss.NewStyle()

	var buf bytes.Buffer
	plain := NewPrinter(&buf, false, ResolveColorMode(ColorNever, &buf))
	if plain.IsTTY() || plain.styles.Error.GetForeground() != empty.GetForeground() {
		t.Error("never should leave styles empty")
	}

	styled := NewPrinter(&buf, false, ResolveColorMode(ColorAlways, &buf))
	if !styled.IsTTY() || styled.styles.Error.GetForeground() == empty.GetForeground() {
		t.Error("always should keep colored styles")
	}
}

func TestPrinter_NeverEmitsNoANSI(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, ResolveColorMode(ColorNever, &buf))

	printer.Error(NewUserError("post 7 not found"))
	printer.Diag("name: %s", "café")

	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("color never should produce no ANSI codes, got: %q", buf.String())
	}
}

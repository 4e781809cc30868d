package shortcut

import (
	"errors"
	"testing"
)

func TestParseBinding(t *testing.T) {
	tests := []struct {
		in   string
		want KeyBinding
	}{
		{"Cmd+Space", DefaultBinding()},
		{"cmd+shift+k", KeyBinding{Modifiers: ModCommand | ModShift, Code: KeyK}},
		{" Ctrl + Alt + F1 ", KeyBinding{Modifiers: ModControl | ModOption, Code: KeyF1}},
		{"super+esc", KeyBinding{Modifiers: ModCommand, Code: KeyEscape}},
		{"Win+Enter", KeyBinding{Modifiers: ModCommand, Code: KeyReturn}},
		{"Option+Meta+Control+Shift+S", KeyBinding{Modifiers: ModifierMask, Code: KeyS}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBinding(tt.in)
			if err != nil {
				t.Fatalf("ParseBinding(%q) = %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("ParseBinding(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseBindingErrors(t *testing.T) {
	tests := []struct {
		in      string
		invalid bool
	}{
		{"", false},
		{"K", true},
		{"Cmd+Shift", true},
		{"Hyper+K", false},
		{"Cmd+NoSuchKey", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseBinding(tt.in)
			if err == nil {
				t.Fatalf("ParseBinding(%q) succeeded", tt.in)
			}
			if tt.invalid && !errors.Is(err, ErrInvalidBinding) {
				t.Fatalf("ParseBinding(%q) = %v, want ErrInvalidBinding", tt.in, err)
			}
		})
	}
}

func TestParseBindingInvertsString(t *testing.T) {
	for code := range keyNames {
		for _, mods := range []Modifier{ModCommand, ModControl | ModShift, ModifierMask} {
			b := KeyBinding{Modifiers: mods, Code: code}
			got, err := ParseBinding(b.String())
			if err != nil {
				t.Fatalf("ParseBinding(%q) = %v", b.String(), err)
			}
			if !got.Equal(b) {
				t.Fatalf("ParseBinding(%q) = %v, want %v", b.String(), got, b)
			}
		}
	}
}

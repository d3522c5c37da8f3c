package ui

import (
	"os"
	"testing"
)

// withTerminal forces the TTY check for the duration of a test.
func withTerminal(t *testing.T, tty bool) {
	t.Helper()
	prev := isTerminal
	isTerminal = func(uintptr) bool { return tty }
	t.Cleanup(func() { isTerminal = prev })
}

func TestSetTheme(t *testing.T) {
	originalTheme := GetCurrentTheme()
	defer SetCurrentTheme(originalTheme)

	testCases := []struct {
		name          string
		themeName     string
		expectedTheme Theme
	}{
		{"Set dark theme", "dark", DarkTheme},
		{"Set light theme", "light", LightTheme},
		{"Set none theme", "none", NoColorTheme},
		{"Unknown theme defaults to dark", "unknown", DarkTheme},
		{"Empty string defaults to dark", "", DarkTheme},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			SetTheme(tc.themeName)
			if got := GetCurrentTheme().Name; got != tc.expectedTheme.Name {
				t.Errorf("SetTheme(%q): got theme %q, want %q", tc.themeName, got, tc.expectedTheme.Name)
			}
		})
	}
}

func TestInitTheme(t *testing.T) {
	originalTheme := GetCurrentTheme()
	defer SetCurrentTheme(originalTheme)

	t.Run("flag disables colors", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		os.Unsetenv("NO_COLOR")
		withTerminal(t, true)
		InitTheme(true)
		if got := GetCurrentTheme(); got.Name != "none" || got.Primary != "" {
			t.Errorf("InitTheme(true) = %+v, want none", got)
		}
	})

	t.Run("NO_COLOR disables colors", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		withTerminal(t, true)
		InitTheme(false)
		if got := GetCurrentTheme().Name; got != "none" {
			t.Errorf("got theme %q, want none", got)
		}
	})

	t.Run("non-terminal disables colors", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		os.Unsetenv("NO_COLOR")
		withTerminal(t, false)
		InitTheme(false)
		if got := GetCurrentTheme().Name; got != "none" {
			t.Errorf("got theme %q, want none", got)
		}
	})

	t.Run("terminal uses dark theme", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		os.Unsetenv("NO_COLOR")
		withTerminal(t, true)
		InitTheme(false)
		if got := GetCurrentTheme().Name; got != "dark" {
			t.Errorf("got theme %q, want dark", got)
		}
	})
}

func TestColorFunctions(t *testing.T) {
	originalTheme := GetCurrentTheme()
	defer SetCurrentTheme(originalTheme)

	SetCurrentTheme(DarkTheme)
	pairs := map[string][2]string{
		"reset":     {ColorReset(), DarkTheme.Reset},
		"red":       {ColorRed(), DarkTheme.Error},
		"green":     {ColorGreen(), DarkTheme.Success},
		"yellow":    {ColorYellow(), DarkTheme.Warning},
		"blue":      {ColorBlue(), DarkTheme.Primary},
		"magenta":   {ColorMagenta(), DarkTheme.Info},
		"cyan":      {ColorCyan(), DarkTheme.Secondary},
		"bold":      {ColorBold(), DarkTheme.Bold},
		"underline": {ColorUnderline(), DarkTheme.Underline},
		"provider":  {ColorProvider{}.Yellow() + ColorProvider{}.Reset(), DarkTheme.Warning + DarkTheme.Reset},
	}
	for name, p := range pairs {
		if p[0] != p[1] {
			t.Errorf("%s: got %q, want %q", name, p[0], p[1])
		}
	}
}

package cli

import (
	"os"

	"golang.org/x/term"

	"github.com/tOgg1/aoc2024/internal/config"
	"github.com/tOgg1/aoc2024/internal/display"
)

func hasTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func themeFor(cfg *config.Config) display.Theme {
	if theme, ok := display.Themes[cfg.TUI.Theme]; ok {
		return theme
	}
	return display.DefaultTheme
}

func quitKeysFor(cfg *config.Config) []display.Key {
	keys := make([]display.Key, 0, len(cfg.TUI.QuitKeys))
	for _, k := range cfg.TUI.QuitKeys {
		keys = append(keys, display.Key(k))
	}
	return keys
}

func loopConfigFor(cfg *config.Config) display.LoopConfig {
	return display.LoopConfig{
		QuitKeys:    quitKeysFor(cfg),
		RowThrottle: cfg.TUI.RowThrottle,
		MaxRows:     cfg.TUI.MaxRows,
	}
}

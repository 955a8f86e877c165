package env

import "log/slog"

type Mode string

const (
	Test  Mode = "test"
	Local Mode = "local"
	Dev   Mode = "dev"
	Prod  Mode = "prod"
)

var currentMode = Test

func SetMode(mode Mode) {
	if !mode.Validate() {
		panic("invalid mode: " + mode.String())
	}
	currentMode = mode
}

func Current() Mode {
	return currentMode
}

func (m Mode) String() string {
	return string(m)
}

func (m Mode) Validate() bool {
	switch m {
	case Test, Local, Dev, Prod:
		return true
	default:
		return false
	}
}

func (m Mode) SlogLevel() slog.Level {
	if m == Prod {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

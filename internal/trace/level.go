package trace

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // в поток ничего, всё в ring для дампа
	LevelPhase        // driver + pass
	LevelDetail       // + файлы
	LevelDebug        // + statements
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the level names in any case; empty means off.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelOff, nil
	}
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return LevelOff, errors.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether a stream writes events of scope at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopePass
	case LevelDetail:
		return scope <= ScopeFile
	case LevelDebug:
		return true
	}
	return false
}

// records reports whether events of scope are produced at all.
func (l Level) records(scope Scope) bool {
	return l == LevelError || l.ShouldEmit(scope)
}

func scopeLevel(s Scope) zerolog.Level {
	switch s {
	case ScopeDriver, ScopePass:
		return zerolog.InfoLevel
	case ScopeFile:
		return zerolog.DebugLevel
	}
	return zerolog.TraceLevel
}

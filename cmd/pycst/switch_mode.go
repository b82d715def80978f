package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// switchMode - значение вида auto|on|off для --ui и diagnostics.color.
type switchMode uint8

const (
	switchAuto switchMode = iota
	switchOn
	switchOff
)

var switchNames = map[string]switchMode{
	"":       switchAuto,
	"auto":   switchAuto,
	"on":     switchOn,
	"always": switchOn,
	"off":    switchOff,
	"never":  switchOff,
}

func parseSwitch(option, value string) (switchMode, error) {
	mode, ok := switchNames[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return switchAuto, errors.Errorf("invalid %s value %q (expected auto|on|off)", option, value)
	}
	return mode, nil
}

// resolve решает auto по тому, терминал ли f.
func (m switchMode) resolve(f *os.File) bool {
	switch m {
	case switchOn:
		return true
	case switchOff:
		return false
	}
	return isTerminal(f)
}

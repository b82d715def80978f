package main

import (
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pycst/internal/driver"
	"pycst/internal/source"
	"pycst/internal/ui"
)

// runWithProgress запускает work в горутине и рисует прогресс по events,
// пока work не закончит. work не должен закрывать events.
func runWithProgress(title string, files []string, events chan driver.FileEvent, work func() checkOutcome) (*source.FileSet, []driver.FileResult, error) {
	outcomeCh := make(chan checkOutcome, 1)
	go func() {
		outcomeCh <- work()
		close(events)
	}()

	model := ui.NewProgressModel(title, displayFileList(files), events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()

	// UI мог выйти раньше времени (ctrl+c): дочитываем события, иначе воркеры встанут
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}

// displayFileList делает пути относительными к рабочему каталогу, где это возможно.
func displayFileList(files []string) []string {
	wd, err := os.Getwd()
	if err != nil {
		return files
	}
	out := make([]string, len(files))
	for i, file := range files {
		out[i] = file
		abs, err := filepath.Abs(file)
		if err != nil {
			continue
		}
		if rel, err := filepath.Rel(wd, abs); err == nil && !strings.HasPrefix(rel, "..") {
			out[i] = rel
		}
	}
	return out
}

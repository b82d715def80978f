package driver

import "time"

// EventKind различает начало и конец обработки файла.
type EventKind uint8

const (
	FileStarted EventKind = iota
	FileDone
)

func (k EventKind) String() string {
	if k == FileDone {
		return "done"
	}
	return "started"
}

// FileEvent is what ParseFiles reports for each file.
type FileEvent struct {
	Name  string // путь как передан в ParseFiles
	Kind  EventKind
	Index int
	Total int

	// Заполняются только для FileDone.
	Result  string // одно из metrics.Result*
	Cached  bool
	Elapsed time.Duration
}

// Observer is called from worker goroutines, possibly concurrently.
type Observer func(FileEvent)

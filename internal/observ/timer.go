package observ

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Phase is one named span of work.
type Phase struct {
	Name    string
	Started time.Time // zero для фаз, накопленных через Add
	Elapsed time.Duration
	Note    string
	Calls   int
}

// accumulated фазы измерены внутри других и в total не входят.
func (p Phase) accumulated() bool { return p.Started.IsZero() }

// Timer collects wall-clock phases of one run.
//
// Begin/End bracket sequential phases; Add sums durations measured by
// workers (per-file lex and parse). All methods are safe for concurrent use
// and do nothing on a nil *Timer.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	byName map[string]int // только для Add
}

func NewTimer() *Timer {
	return &Timer{byName: make(map[string]int)}
}

// Begin opens a phase and returns the handle End expects.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Started: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase opened by Begin. Unknown handles are ignored.
func (t *Timer) End(handle int, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if handle < 0 || handle >= len(t.phases) || t.phases[handle].accumulated() {
		return
	}
	ph := &t.phases[handle]
	ph.Elapsed, ph.Note, ph.Calls = time.Since(ph.Started), note, 1
}

// Add folds d into the accumulated phase name.
func (t *Timer) Add(name string, d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	i, ok := t.byName[name]
	if !ok {
		i = len(t.phases)
		t.byName[name] = i
		t.phases = append(t.phases, Phase{Name: name})
	}
	t.phases[i].Elapsed += d
	t.phases[i].Calls++
}

// PhaseReport is the serialisable view of a Phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count,omitempty"`
	Note       string  `json:"note,omitempty"`
}

// Report is a snapshot of the timer.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report снимает текущее состояние. total считает только фазы Begin/End.
func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	var (
		rep   Report
		total time.Duration
	)
	for _, ph := range t.phases {
		if !ph.accumulated() {
			total += ph.Elapsed
		}
		rep.Phases = append(rep.Phases, PhaseReport{
			Name:       ph.Name,
			DurationMS: millis(ph.Elapsed),
			Count:      ph.Calls,
			Note:       ph.Note,
		})
	}
	rep.TotalMS = millis(total)
	return rep
}

// WriteTable renders the report as a table.
func (t *Timer) WriteTable(w io.Writer) error {
	rep := t.Report()
	rows := make([][]string, 0, len(rep.Phases)+1)
	for _, ph := range rep.Phases {
		calls := ""
		if ph.Count > 1 {
			calls = "x" + strconv.Itoa(ph.Count)
		}
		rows = append(rows, []string{ph.Name, formatMS(ph.DurationMS), calls, ph.Note})
	}
	rows = append(rows, []string{"total", formatMS(rep.TotalMS), "", ""})

	table := tablewriter.NewWriter(w)
	table.Header("Phase", "Time", "Calls", "Note")
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// Summary is WriteTable into a string.
func (t *Timer) Summary() string {
	var sb strings.Builder
	if err := t.WriteTable(&sb); err != nil {
		return "timings: " + err.Error() + "\n"
	}
	return sb.String()
}

func millis(d time.Duration) float64 { return d.Seconds() * 1000 }

func formatMS(ms float64) string { return fmt.Sprintf("%.2f ms", ms) }

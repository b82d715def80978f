// Package metrics держит prometheus-реестр счётчиков разбора.
// Все методы *Metrics допускают nil-приёмник.
package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Result labels for pycst_files_total.
const (
	ResultOK          = "ok"
	ResultLexError    = "lex_error"
	ResultSyntaxError = "syntax_error"
	ResultIOError     = "io_error"
)

var (
	ResultLabel = "result"
	CacheLabel  = "cache"
)

type Metrics struct {
	registry *prometheus.Registry
	Files    *prometheus.CounterVec
	Bytes    prometheus.Counter
	Tokens   prometheus.Counter
	Cache    *prometheus.CounterVec
	ParseNS  prometheus.Histogram
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	buckets := []float64{}
	for i := 1; i < 16; i++ {
		buckets = append(buckets, float64(int64(i*i)*int64(time.Millisecond)))
	}

	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Files: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pycst_files_total",
			Help: "Files processed, by outcome",
		}, []string{ResultLabel}),
		Bytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "pycst_source_bytes_total",
			Help: "Source bytes read",
		}),
		Tokens: factory.NewCounter(prometheus.CounterOpts{
			Name: "pycst_tokens_total",
			Help: "Tokens produced by the lexer",
		}),
		Cache: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pycst_parse_cache_total",
			Help: "Parse cache lookups",
		}, []string{CacheLabel}),
		ParseNS: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pycst_parse_ns",
			Help:    "Per-file lex+parse time",
			Buckets: buckets,
		}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveFile records one processed file.
func (m *Metrics) ObserveFile(result string, size, tokens int, d time.Duration) {
	if m == nil {
		return
	}
	m.Files.With(prometheus.Labels{ResultLabel: result}).Inc()
	m.Bytes.Add(float64(size))
	m.Tokens.Add(float64(tokens))
	m.ParseNS.Observe(float64(d.Nanoseconds()))
}

// ObserveCache records a parse cache lookup.
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	label := "miss"
	if hit {
		label = "hit"
	}
	m.Cache.With(prometheus.Labels{CacheLabel: label}).Inc()
}

// WriteText gathers the registry and writes it in the text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	if m == nil {
		return nil
	}
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

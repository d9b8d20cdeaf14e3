// Package logger provides console logging and run metrics for volleyzone-tables.
//
// Messages are written through zerolog's console writer, one human-readable line
// per entry, to standard error by default. Structured fields are appended as
// key=value pairs:
//
//	log := logger.New(logger.LevelInfo, os.Stderr)
//	log.Info("Retrieving table", logger.Fields{
//	    "division": "div_2a_men",
//	    "id":       "198880",
//	})
//
// Writes are serialized, so one Logger may be shared by concurrent workers.
//
// Metrics collects counters, gauges and timings for the run summary.
package logger

import (
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// zerologLevel maps a Level onto zerolog; unknown levels fall back to info
func (l Level) zerologLevel() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger provides leveled console logging
type Logger struct {
	zl zerolog.Logger
}

// Fields represents structured log fields
type Fields map[string]interface{}

var defaultLogger = New(LevelInfo, os.Stderr)

// New creates a logger writing to output. Messages below level are discarded.
func New(level Level, output io.Writer) *Logger {
	console := zerolog.ConsoleWriter{
		Out:        output,
		NoColor:    true,
		TimeFormat: time.TimeOnly,
	}
	return &Logger{
		zl: zerolog.New(zerolog.SyncWriter(console)).Level(level.zerologLevel()).With().Timestamp().Logger(),
	}
}

// SetDefault replaces the logger used by the package-level functions
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// Default returns the logger used by the package-level functions
func Default() *Logger {
	return defaultLogger
}

func (l *Logger) log(event *zerolog.Event, message string, fields Fields, err error) {
	if len(fields) > 0 {
		event = event.Fields(map[string]interface{}(fields))
	}
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(message)
}

// Debug logs a diagnostic message
func (l *Logger) Debug(message string, fields Fields) {
	l.log(l.zl.Debug(), message, fields, nil)
}

// Info logs a progress message
func (l *Logger) Info(message string, fields Fields) {
	l.log(l.zl.Info(), message, fields, nil)
}

// Warn logs a message about a problem that does not stop the run
func (l *Logger) Warn(message string, fields Fields) {
	l.log(l.zl.Warn(), message, fields, nil)
}

// Error logs a failure together with its error
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(l.zl.Error(), message, fields, err)
}

// Warn logs a warning message with the default logger
func Warn(message string, fields Fields) {
	defaultLogger.Warn(message, fields)
}

// Metrics tracks counters, gauges and timings for a run. Safe for concurrent use.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
	gauges   map[string]float64
	timings  map[string][]time.Duration
}

// TimingStats summarises the durations recorded under one name
type TimingStats struct {
	Count   int
	Total   time.Duration
	Average time.Duration
	Min     time.Duration
	Max     time.Duration
}

// Snapshot is a copy of the metrics at one point in time
type Snapshot struct {
	Counters map[string]int64
	Gauges   map[string]float64
	Timings  map[string]TimingStats
}

// NewMetrics creates an empty metrics tracker
func NewMetrics() *Metrics {
	return &Metrics{
		counters: make(map[string]int64),
		gauges:   make(map[string]float64),
		timings:  make(map[string][]time.Duration),
	}
}

// IncrCounter increments a counter by 1
func (m *Metrics) IncrCounter(name string) {
	m.AddCounter(name, 1)
}

// AddCounter increments a counter by delta
func (m *Metrics) AddCounter(name string, delta int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] += delta
}

// SetGauge sets a gauge, overwriting any previous value
func (m *Metrics) SetGauge(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[name] = value
}

// RecordTiming records one duration measurement
func (m *Metrics) RecordTiming(name string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings[name] = append(m.timings[name], duration)
}

// GetSnapshot returns a deep copy of the current metrics
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := Snapshot{
		Counters: make(map[string]int64, len(m.counters)),
		Gauges:   make(map[string]float64, len(m.gauges)),
		Timings:  make(map[string]TimingStats, len(m.timings)),
	}
	for k, v := range m.counters {
		snapshot.Counters[k] = v
	}
	for k, v := range m.gauges {
		snapshot.Gauges[k] = v
	}

	for name, durations := range m.timings {
		if len(durations) == 0 {
			continue
		}
		stats := TimingStats{Count: len(durations), Min: durations[0], Max: durations[0]}
		for _, d := range durations {
			stats.Total += d
			if d < stats.Min {
				stats.Min = d
			}
			if d > stats.Max {
				stats.Max = d
			}
		}
		stats.Average = stats.Total / time.Duration(stats.Count)
		snapshot.Timings[name] = stats
	}

	return snapshot
}

// Log writes the snapshot at debug level, one line per metric in name order
func (s Snapshot) Log(l *Logger) {
	for _, name := range sortedKeys(s.Counters) {
		l.Debug("Counter", Fields{"name": name, "value": s.Counters[name]})
	}
	for _, name := range sortedKeys(s.Gauges) {
		l.Debug("Gauge", Fields{"name": name, "value": s.Gauges[name]})
	}
	for _, name := range sortedKeys(s.Timings) {
		t := s.Timings[name]
		l.Debug("Timing", Fields{
			"name":    name,
			"count":   t.Count,
			"total":   t.Total.String(),
			"average": t.Average.String(),
			"min":     t.Min.String(),
			"max":     t.Max.String(),
		})
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

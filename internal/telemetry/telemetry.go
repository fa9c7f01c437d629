// Package telemetry records a JSONL stream of watch and build events so a
// session can be replayed or analyzed after the fact.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Event kinds identify the type of telemetry event.
const (
	KindSessionStart = "session_start"
	KindWatchChange  = "watch_change"
	KindBuildStart   = "build_start"
	KindBuildDone    = "build_done"
	KindBuildFailed  = "build_failed"
	KindSessionDone  = "session_done"
)

// Event is a single telemetry record. Build numbers count runs of a job
// within one session, starting at 1.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	Job       string    `json:"job,omitempty"`
	Build     int       `json:"build,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// Emitter writes telemetry events to a JSONL file. It is safe for concurrent
// use by multiple goroutines. A nil *Emitter is a valid no-op emitter.
type Emitter struct {
	file *os.File
	enc  *json.Encoder
	mu   sync.Mutex
	now  func() time.Time
}

// NewEmitter creates a new Emitter that writes JSONL events to the file at
// path. The file is created if it does not exist, or appended to if it does.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &Emitter{
		file: f,
		enc:  json.NewEncoder(f),
		now:  time.Now,
	}, nil
}

// Emit writes a single event, stamping it with the current time when
// Timestamp is zero. Calling Emit on a nil Emitter is a no-op.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if evt.Timestamp.IsZero() {
		evt.Timestamp = e.now()
	}
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// Record is shorthand for emitting an event of kind for a job's build.
func (e *Emitter) Record(kind, job string, build int, data any) error {
	return e.Emit(Event{Kind: kind, Job: job, Build: build, Data: data})
}

// Close closes the underlying file. Calling Close on a nil Emitter is a no-op.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}

// Decode parses one JSONL line into an Event.
func Decode(line string) (Event, error) {
	var evt Event
	if err := json.Unmarshal([]byte(line), &evt); err != nil {
		return Event{}, fmt.Errorf("telemetry: decode event: %w", err)
	}
	return evt, nil
}

// Format renders evt on one line: time, kind, job and build, then the data.
// Object data is printed as key=value pairs sorted by key.
func Format(evt Event) string {
	parts := []string{fmt.Sprintf("[%s]", evt.Timestamp.Format(time.TimeOnly)), evt.Kind}
	if evt.Job != "" {
		parts = append(parts, "job="+evt.Job)
	}
	if evt.Build > 0 {
		parts = append(parts, fmt.Sprintf("build=%d", evt.Build))
	}
	switch d := evt.Data.(type) {
	case nil:
	case map[string]any:
		parts = append(parts, formatDataMap(d))
	case string:
		parts = append(parts, d)
	default:
		data, _ := json.Marshal(d)
		parts = append(parts, string(data))
	}
	return strings.Join(parts, " ")
}

func formatDataMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", k, m[k])
	}
	return b.String()
}

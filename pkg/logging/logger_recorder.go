package logging

import "sync"

// RecordedEntry is one message captured by a Recorder.
type RecordedEntry struct {
	Level   Level
	Message string
	Fields  map[string]any
}

// Recorder is an in-memory Logger for tests. Children created by With append
// to the same entry list.
type Recorder struct {
	shared *recorderState
	fields []Field
}

type recorderState struct {
	mu      sync.Mutex
	level   Level
	entries []RecordedEntry
}

// NewRecorder creates a Recorder capturing every level.
func NewRecorder() *Recorder {
	return &Recorder{shared: &recorderState{level: DebugLevel}}
}

func (r *Recorder) record(level Level, msg string, fields []Field) {
	r.shared.mu.Lock()
	defer r.shared.mu.Unlock()
	if level < r.shared.level {
		return
	}
	m := make(map[string]any, len(r.fields)+len(fields))
	for _, f := range r.fields {
		m[f.Key] = f.Value
	}
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	r.shared.entries = append(r.shared.entries, RecordedEntry{Level: level, Message: msg, Fields: m})
}

func (r *Recorder) Debug(msg string, fields ...Field) { r.record(DebugLevel, msg, fields) }
func (r *Recorder) Info(msg string, fields ...Field)  { r.record(InfoLevel, msg, fields) }
func (r *Recorder) Warn(msg string, fields ...Field)  { r.record(WarnLevel, msg, fields) }
func (r *Recorder) Error(msg string, fields ...Field) { r.record(ErrorLevel, msg, fields) }

func (r *Recorder) With(fields ...Field) Logger {
	merged := make([]Field, 0, len(r.fields)+len(fields))
	merged = append(merged, r.fields...)
	merged = append(merged, fields...)
	return &Recorder{shared: r.shared, fields: merged}
}

func (r *Recorder) SetLevel(level Level) {
	r.shared.mu.Lock()
	defer r.shared.mu.Unlock()
	r.shared.level = level
}

func (r *Recorder) GetLevel() Level {
	r.shared.mu.Lock()
	defer r.shared.mu.Unlock()
	return r.shared.level
}

// Entries returns a copy of the captured entries.
func (r *Recorder) Entries() []RecordedEntry {
	r.shared.mu.Lock()
	defer r.shared.mu.Unlock()
	return append([]RecordedEntry(nil), r.shared.entries...)
}

// AtLevel returns the captured entries of one level.
func (r *Recorder) AtLevel(level Level) []RecordedEntry {
	var out []RecordedEntry
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

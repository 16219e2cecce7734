package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Domain field helpers

func Component(name string) Field {
	return String("component", name)
}

func VertexID(id uint64) Field {
	return Uint64("vertex_id", id)
}

func Label(label string) Field {
	return String("label", label)
}

func Character(name string) Field {
	return String("character", name)
}

// EdgeType takes the edge type's name so this package stays free of graph imports.
func EdgeType(name string) Field {
	return String("edge_type", name)
}

func Unit(name string) Field {
	return String("unit", name)
}

func RunID(id string) Field {
	return String("run_id", id)
}

func Trace(name string) Field {
	return String("trace", name)
}

func Stage(name string) Field {
	return String("stage", name)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}

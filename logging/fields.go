package logging

import (
	"strconv"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

func Experiment(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("experiment", name)
	}
}

func Run(run int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("run", run)
	}
}

func RunID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("run_id", id)
	}
}

func Episodes(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("episodes", n)
	}
}

// Reward adds a reward field. Floats are rendered with strconv so the
// output is identical across handlers.
func Reward(key string, r float64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, strconv.FormatFloat(r, 'f', 4, 64))
	}
}

func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}

func Int(key string, value int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int(key, value)
	}
}

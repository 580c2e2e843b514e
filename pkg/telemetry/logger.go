package telemetry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

//nolint:gochecknoglobals // Process-wide log sink
var (
	mu     sync.Mutex
	output io.Writer = os.Stdout
)

// SetOutput redirects log lines to w and returns the previous writer.
func SetOutput(w io.Writer) (previous io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	previous = output
	output = w
	return previous
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	write("info", msg, fields)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	write("warn", msg, fields)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	write("error", msg, fields)
}

func write(level, msg string, fields map[string]any) {
	ts := time.Now().UTC().Format(time.RFC3339)

	entry := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		if e, ok := v.(error); ok {
			v = e.Error()
		}
		entry[k] = v
	}
	entry["ts"] = ts
	entry["level"] = level
	entry["msg"] = msg

	// Values such as "pending->in_progress" are logged verbatim.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(entry)

	mu.Lock()
	defer mu.Unlock()

	if err != nil {
		fmt.Fprintf(output, `{"ts":"%s","level":"error","msg":"logger marshal failed","err":%q}`+"\n", ts, err.Error())
		return
	}
	_, _ = output.Write(buf.Bytes())
}

// Package log writes tedit's diagnostic log. Nothing is written until Init
// opens a log file, which main does for --log.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Category names the part of the editor an entry comes from.
type Category string

const (
	CatBuffer  Category = "buffer"  // edits and history
	CatSearch  Category = "search"  // find and replace sessions
	CatSyntax  Category = "syntax"  // tokenizers and the line cache
	CatFile    Category = "file"    // loading and saving
	CatWatcher Category = "watcher" // file watcher events
	CatUI      Category = "ui"      // screen and input handling
	CatConfig  Category = "config"  // settings and .editorconfig
	CatCommand Category = "command" // command dispatch
)

type level uint8

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// sink serialises writes from the UI goroutine and the watcher goroutine.
type sink struct {
	mu sync.Mutex
	w  io.Writer
}

var current atomic.Pointer[sink]

// Init appends the log to the file at path. The returned func closes it.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G304: path is the user's --log flag
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	current.Store(&sink{w: f})
	return func() {
		current.Store(nil)
		_ = f.Close()
	}, nil
}

// setOutput sends entries to w, or turns logging off when w is nil.
func setOutput(w io.Writer) {
	if w == nil {
		current.Store(nil)
		return
	}
	current.Store(&sink{w: w})
}

func Debug(cat Category, msg string, fields ...any) { write(levelDebug, cat, msg, fields) }
func Info(cat Category, msg string, fields ...any) { write(levelInfo, cat, msg, fields) }
func Warn(cat Category, msg string, fields ...any) { write(levelWarn, cat, msg, fields) }
func Error(cat Category, msg string, fields ...any) { write(levelError, cat, msg, fields) }

// ErrorErr logs at error level with err appended as the error field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	text := "<nil>"
	if err != nil {
		text = err.Error()
	}
	write(levelError, cat, msg, append(fields, "error", text))
}

// write emits one line: time, [LEVEL], [category], message, then key=value
// pairs. A trailing key without a value is marked <missing>.
func write(lv level, cat Category, msg string, fields []any) {
	s := current.Load()
	if s == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] [%s] %s", time.Now().Format("2006-01-02T15:04:05"), lv, cat, msg)
	for i := 0; i < len(fields); i += 2 {
		if i+1 == len(fields) {
			fmt.Fprintf(&sb, " %v=<missing>", fields[i])
			break
		}
		fmt.Fprintf(&sb, " %v=%v", fields[i], fields[i+1])
	}
	sb.WriteByte('\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.w, sb.String())
}

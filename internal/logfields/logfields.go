// Package logfields holds the canonical slog keys used across go-cv2pdf.
package logfields

import (
	"log/slog"
	"time"
)

// Log field names.
const (
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyOutput     = "output"
	KeyConfig     = "config"
	KeyRedacted   = "redacted"
	KeyPage       = "page"
	KeyEntries    = "entries"
	KeyBytes      = "bytes"
	KeyPID        = "pid"
	KeyError      = "error"
)

func Stage(name string) slog.Attr { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func Output(p string) slog.Attr { return slog.String(KeyOutput, p) }
func Config(name string) slog.Attr { return slog.String(KeyConfig, name) }
func Redacted(r bool) slog.Attr { return slog.Bool(KeyRedacted, r) }
func Page(n int) slog.Attr { return slog.Int(KeyPage, n) }
func Entries(idx []int) slog.Attr { return slog.Any(KeyEntries, idx) }
func Bytes(n int) slog.Attr { return slog.Int(KeyBytes, n) }
func PID(pid int) slog.Attr { return slog.Int(KeyPID, pid) }

// Since returns the milliseconds elapsed since start.
func Since(start time.Time) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(time.Since(start).Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

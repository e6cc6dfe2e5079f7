package main

import (
	"io"

	"github.com/fatih/color"

	"github.com/five82/airshare/internal/logbuf"
)

var (
	colorSuccess = color.New(color.FgGreen)
	colorError   = color.New(color.FgRed)
	colorWarning = color.New(color.FgYellow)
	colorInfo    = color.New(color.FgCyan)
	colorMuted   = color.New(color.FgHiBlack)
)

func levelColor(level logbuf.Level) *color.Color {
	switch level {
	case logbuf.LevelSuccess:
		return colorSuccess
	case logbuf.LevelError:
		return colorError
	case logbuf.LevelWarning:
		return colorWarning
	default:
		return colorInfo
	}
}

// printLog writes activity log entries, oldest first.
func printLog(w io.Writer, entries []logbuf.Entry) {
	for _, e := range entries {
		colorMuted.Fprint(w, e.Time+" ")
		levelColor(e.Level).Fprintln(w, e.Message)
	}
}

package utils

import (
	"fmt"
	"time"
)

// MessageType is a custom type used as a placeholder for various message types.
type MessageType int

// The message types used across the CLI application.
const (
	DefaultMessage MessageType = iota
	SuccessMessage
	ErrorMessage
	StatusMessage
)

// Colors used across the CLI application.
const (
	DefaultColor = "\x1b[0m"
	StatusColor  = "\x1b[36m"
	SuccessColor = "\x1b[32m"
	ErrorColor   = "\x1b[31m"
)

var msgColors = map[MessageType]string{
	DefaultMessage: DefaultColor,
	SuccessMessage: SuccessColor,
	ErrorMessage:   ErrorColor,
	StatusMessage:  StatusColor,
}

// DecorateText shows the message types in different colors.
func DecorateText(s string, msgType MessageType) string {
	color, ok := msgColors[msgType]
	if !ok {
		return s
	}
	return color + s + DefaultColor
}

// FormatTime formats time.Duration output to a human readable value.
func FormatTime(d time.Duration) string {
	secs := float64(d%time.Minute) / float64(time.Second)

	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", secs)
	case d < time.Hour:
		return fmt.Sprintf("%dm %.2fs", int64(d/time.Minute), secs)
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh %dm %.2fs", int64(d/time.Hour), int64(d%time.Hour/time.Minute), secs)
	}
	return fmt.Sprintf("%dd %dh %dm %.2fs",
		int64(d/(24*time.Hour)), int64(d%(24*time.Hour)/time.Hour),
		int64(d%time.Hour/time.Minute), secs)
}

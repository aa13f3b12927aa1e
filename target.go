package mlog

import (
	"fmt"
	"strings"
)

// Target selects the sink and formatter pairing for a logger.
type Target int

const (
	// TargetConsole writes text lines to a console stream (stdout by default).
	TargetConsole Target = iota
	// TargetFile appends text lines to a file.
	TargetFile
	// TargetJSON appends newline-delimited JSON entries to a file.
	TargetJSON
)

func (t Target) String() string {
	switch t {
	case TargetConsole:
		return "CONSOLE"
	case TargetFile:
		return "FILE"
	case TargetJSON:
		return "JSON"
	default:
		return fmt.Sprintf("TARGET(%d)", int(t))
	}
}

// ParseTarget converts a target name (any case) to a Target.
// Unknown names fail with ErrInvalidConfiguration.
func ParseTarget(s string) (Target, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CONSOLE":
		return TargetConsole, nil
	case "FILE":
		return TargetFile, nil
	case "JSON":
		return TargetJSON, nil
	default:
		return 0, invalidConfigf("target", "unknown target %q", s)
	}
}

// needsFile reports whether the target writes to a file path.
func (t Target) needsFile() bool {
	return t == TargetFile || t == TargetJSON
}

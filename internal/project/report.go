package project

import (
	"fmt"
	"log"
)

// WarningKind classifies a recoverable problem met while loading or
// saving.
type WarningKind int

const (
	MissingAsset WarningKind = iota
	MalformedColor
	MalformedNumber
	UnknownTemplate
	UnknownKind
	ExpressionFailure
	AssetWriteFailure
)

var warningNames = [...]string{
	MissingAsset:      "missing asset",
	MalformedColor:    "malformed color",
	MalformedNumber:   "malformed number",
	UnknownTemplate:   "unknown template",
	UnknownKind:       "unknown kind",
	ExpressionFailure: "expression failure",
	AssetWriteFailure: "asset write failure",
}

func (k WarningKind) String() string {
	if k < 0 || int(k) >= len(warningNames) {
		return "warning"
	}
	return warningNames[k]
}

// Warning is one recoverable problem. Line is 1-based; 0 means the warning
// is not tied to a line.
type Warning struct {
	Line   int
	Kind   WarningKind
	Detail string
}

func (w Warning) String() string {
	if w.Line == 0 {
		return fmt.Sprintf("%s: %s", w.Kind, w.Detail)
	}
	return fmt.Sprintf("line %d: %s: %s", w.Line, w.Kind, w.Detail)
}

// Report describes the outcome of a Load or Save.
type Report struct {
	Path     string
	Objects  int
	Missing  bool // the project file did not exist
	Warnings []Warning
}

// Has reports whether any warning of kind k was recorded.
func (r *Report) Has(k WarningKind) bool {
	for _, w := range r.Warnings {
		if w.Kind == k {
			return true
		}
	}
	return false
}

func (r *Report) warn(line int, k WarningKind, format string, args ...any) {
	w := Warning{Line: line, Kind: k, Detail: fmt.Sprintf(format, args...)}
	r.Warnings = append(r.Warnings, w)
	log.Printf("project: line %d: %s: %s", w.Line, w.Kind, w.Detail)
}

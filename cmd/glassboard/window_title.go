package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/example/glassboard/internal/appstate"
)

type titleOptions struct {
	Project string
	Imports int
	Extras  []string
}

func windowTitle(opts titleOptions) string {
	parts := []string{appstate.ProgramTitle}

	project := strings.TrimSpace(opts.Project)
	if project != "" {
		parts = append(parts, filepath.Base(project))
	}

	extras := make([]string, 0, len(opts.Extras)+4)

	if opts.Imports > 0 {
		extras = append(extras, fmt.Sprintf("%d to import", opts.Imports))
	}

	if strings.TrimSpace(version) != "" {
		extras = append(extras, fmt.Sprintf("v%s", strings.TrimSpace(version)))
	}

	if strings.TrimSpace(commit) != "" {
		extras = append(extras, fmt.Sprintf("commit %s", strings.TrimSpace(commit)))
	}

	if strings.TrimSpace(date) != "" {
		extras = append(extras, strings.TrimSpace(date))
	}

	if len(opts.Extras) > 0 {
		extras = append(extras, opts.Extras...)
	}

	if len(extras) > 0 {
		parts = append(parts, extras...)
	}

	return strings.Join(parts, " - ")
}

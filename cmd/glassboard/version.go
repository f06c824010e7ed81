package main

import (
	"fmt"
	"strings"
)

type versionCmd struct{ r *root }

func (v *versionCmd) Run() error {
	line := fmt.Sprintf("%s version %s", v.r.program, version)
	if c := strings.TrimSpace(commit); c != "" {
		line += " (" + c + ")"
	}
	if d := strings.TrimSpace(date); d != "" {
		line += " " + d
	}
	fmt.Println(line)
	return nil
}

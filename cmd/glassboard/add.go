package main

import (
	"flag"
	"fmt"

	"github.com/example/glassboard/internal/appstate"
)

type addCmd struct {
	project string
	files   []string
	*root
	fs *flag.FlagSet
}

func (a *addCmd) FlagSet() *flag.FlagSet {
	return a.fs
}

func parseAddCmd(args []string, r *root) (*addCmd, error) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	c := &addCmd{root: r.subcommand("add"), fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.project, "project", DefaultProject, "project file to add to")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: c}
	}
	c.project = c.root.projectPath(c.project)
	c.files = fs.Args()
	return c, nil
}

func (a *addCmd) Run() error {
	st := appstate.New(
		appstate.WithProject(a.project),
		appstate.WithImports(a.files...),
	)
	if err := st.Reload(); err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}
	if n := st.ImportQueued(); n == 0 {
		return fmt.Errorf("none of %d file(s) could be imported", len(a.files))
	}
	if err := st.Save(); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/example/glassboard/internal/project"
	"github.com/example/glassboard/internal/scene"
)

type checkCmd struct {
	project string
	stdout  io.Writer
	*root
	fs *flag.FlagSet
}

func (c *checkCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseCheckCmd(args []string, r *root) (*checkCmd, error) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	c := &checkCmd{root: r.subcommand("check"), fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.project, "project", DefaultProject, "project file to check")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	c.project = c.root.projectPath(c.project)
	return c, nil
}

func (c *checkCmd) Run() error {
	rep, err := project.Load(scene.NewStore(), c.project)
	if err != nil {
		return err
	}
	if rep.Missing {
		return fmt.Errorf("project %s does not exist", c.project)
	}
	for _, w := range rep.Warnings {
		fmt.Fprintln(c.stdout, w.String())
	}
	fmt.Fprintf(c.stdout, "%s: %d objects, %d warnings\n", c.project, rep.Objects, len(rep.Warnings))
	if n := len(rep.Warnings); n > 0 {
		return fmt.Errorf("%s has %d warnings", c.project, n)
	}
	return nil
}

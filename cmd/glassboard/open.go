package main

import (
	"flag"
	"log"

	"github.com/example/glassboard/internal/appstate"
)

type openCmd struct {
	project string
	width   int
	height  int
	imports []string
	*root
	fs *flag.FlagSet
}

func (o *openCmd) FlagSet() *flag.FlagSet {
	return o.fs
}

func parseOpenCmd(args []string, r *root) (*openCmd, error) {
	fs := flag.NewFlagSet("open", flag.ExitOnError)
	c := &openCmd{root: r.subcommand("open"), fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.project, "project", DefaultProject, "project file to load and save")
	fs.IntVar(&c.width, "width", 1280, "initial window width in pixels")
	fs.IntVar(&c.height, "height", 800, "initial window height in pixels")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	c.project = c.root.projectPath(c.project)
	c.imports = fs.Args()
	return c, nil
}

// state builds the window state and loads the project into it. A missing
// project starts an empty canvas.
func (o *openCmd) state() (*appstate.AppState, error) {
	opts := []appstate.Option{
		appstate.WithProject(o.project),
		appstate.WithImports(o.imports...),
		appstate.WithSize(o.width, o.height),
		appstate.WithView(o.root.newView(o.width, o.height)),
		appstate.WithCompositor(o.root.newCompositor()),
		appstate.WithTitle(windowTitle(titleOptions{Project: o.project, Imports: len(o.imports)})),
	}
	if o.root.notifier != nil {
		opts = append(opts, appstate.WithNotifier(o.root.notifier))
	}
	st := appstate.New(opts...)
	if err := st.Reload(); err != nil {
		return nil, err
	}
	return st, nil
}

func (o *openCmd) Run() error {
	st, err := o.state()
	if err != nil {
		return err
	}
	log.Printf("opening %s", o.project)
	st.Run()
	return nil
}

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/taskboard/internal/cli"
	"github.com/idilsaglam/taskboard/internal/config"
	"github.com/idilsaglam/taskboard/internal/storage"
	"github.com/idilsaglam/taskboard/internal/storage/jsonstore"
	"github.com/idilsaglam/taskboard/internal/storage/sqlitestore"
	"github.com/idilsaglam/taskboard/internal/taskstore"
	"github.com/idilsaglam/taskboard/internal/themestore"
	"github.com/idilsaglam/taskboard/internal/tui"
)

func main() {
	// Root flags (apply to every subcommand)
	groupPending := flag.Bool("group", false, "group output by pending/done")
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stdout)
		os.Exit(cli.ExitUsage)
	}
	os.Exit(run(args, cli.Options{Group: *groupPending}))
}

func run(args []string, opt cli.Options) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return cli.ExitError
	}

	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "taskboard")
		if err != nil {
			fmt.Fprintln(os.Stderr, "log:", err)
			return cli.ExitError
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	kv, closeKV, err := openStorage(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "storage:", err)
		return cli.ExitError
	}
	defer closeKV()

	tasks, err := taskstore.New(kv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return cli.ExitError
	}

	var pref themestore.Preference = themestore.TerminalPreference{}
	if cfg.Theme != "" {
		pref = themestore.StaticPreference(cfg.Theme == themestore.Dark)
	}
	theme, err := themestore.New(kv, pref)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return cli.ExitError
	}

	app := &cli.App{
		Tasks:   tasks,
		Theme:   theme,
		Out:     os.Stdout,
		Err:     os.Stderr,
		NoColor: cfg.Colorless(),
	}
	app.Interactive = func() error { return tui.Run(tasks, theme, app.NoColor) }

	code := cli.Run(app, args, opt)
	if code != cli.ExitOK {
		fmt.Fprintln(os.Stderr)
	}
	return code
}

// openStorage picks the configured backend. The returned func releases it.
func openStorage(cfg *config.Config) (storage.KeyValue, func(), error) {
	noop := func() {}
	switch cfg.Backend {
	case config.BackendMemory:
		return storage.NewMemory(nil), noop, nil
	case config.BackendSQLite:
		if err := cfg.EnsureDir(); err != nil {
			return nil, noop, err
		}
		s, err := sqlitestore.Open(cfg.Path(sqlitestore.FileName))
		if err != nil {
			return nil, noop, err
		}
		return s, func() { s.Close() }, nil
	default:
		s, err := jsonstore.Open(cfg.Path(jsonstore.FileName))
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	}
}

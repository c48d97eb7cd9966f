// Package app runs a retext session: it loads the document and journal,
// drives the interactive prompt loop (or a batch script), and writes
// the results back out.
package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/Krish962/regex-text-versioning/internal/config"
	"github.com/Krish962/regex-text-versioning/internal/engine"
	"github.com/Krish962/regex-text-versioning/internal/engine/journal"
	"github.com/Krish962/regex-text-versioning/internal/script"
)

// Options come from command-line flags. Non-empty values override the
// config file.
type Options struct {
	ConfigPath string
	Input      string
	Output     string
	Journal    string
	Script     string
}

// App owns one editing session from load to save.
type App struct {
	mu  sync.RWMutex
	cfg config.Config

	session    *engine.Session
	configPath string
	scriptPath string

	in     *bufio.Reader
	out    io.Writer
	styles styles
}

// New loads the configuration and the initial document and builds the
// session. A document that cannot be read aborts before any journal
// exists; a journal file that exists but does not parse or replay
// aborts as well rather than silently dropping history.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Input != "" {
		cfg.Input = opts.Input
	}
	if opts.Output != "" {
		cfg.Output = opts.Output
	}
	if opts.Journal != "" {
		cfg.Journal = opts.Journal
	}

	original, err := os.ReadFile(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", cfg.Input, err)
	}

	var sessionOpts []engine.Option
	if cfg.Journal != "" {
		log, err := loadJournal(cfg.Journal)
		if err != nil {
			return nil, err
		}
		if log != nil {
			sessionOpts = append(sessionOpts, engine.WithJournal(log))
		}
	}

	session, err := engine.NewSession(string(original), sessionOpts...)
	if err != nil {
		return nil, fmt.Errorf("resuming journal %s: %w", cfg.Journal, err)
	}

	return &App{
		cfg:        cfg,
		session:    session,
		configPath: opts.ConfigPath,
		scriptPath: opts.Script,
		in:         bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		styles:     newStyles(),
	}, nil
}

func loadJournal(path string) (*journal.Log, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	log, err := journal.Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading journal %s: %w", path, err)
	}
	return log, nil
}

// Run executes the session: the batch script when one was given,
// otherwise the interactive loop. The final document (and journal,
// when configured) is saved on the way out.
func (a *App) Run() error {
	if a.config().LiveReload && a.configPath != "" {
		watcher, err := config.Watch(a.configPath, a.setConfig)
		if err == nil {
			defer watcher.Close()
		}
	}

	if a.scriptPath != "" {
		if err := script.RunFile(a.session, a.scriptPath); err != nil {
			return err
		}
		return a.save()
	}

	return a.interact()
}

// interact is the menu loop. EOF on input behaves like choosing exit.
func (a *App) interact() error {
	fmt.Fprintf(a.out, "\nDocument loaded from %s:\n\n%s\n", a.config().Input, a.session.Current())

	for {
		fmt.Fprint(a.out, "\n1) edit  2) revert  3) history  4) save and exit\n")

		choice, err := a.promptLine("> ")
		if errors.Is(err, io.EOF) {
			return a.save()
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1", "edit":
			if err := a.editLoop(); err != nil {
				return err
			}
		case "2", "revert":
			if err := a.revertLoop(); err != nil {
				return err
			}
		case "3", "history":
			if err := a.session.Journal().ExportYAML(a.out); err != nil {
				return err
			}
		case "4", "exit", "quit":
			return a.save()
		default:
			fmt.Fprintln(a.out, a.styles.warn.Render("invalid choice"))
		}
	}
}

func (a *App) save() error {
	cfg := a.config()

	if err := os.WriteFile(cfg.Output, []byte(a.session.Current()), 0o644); err != nil {
		return fmt.Errorf("writing document %s: %w", cfg.Output, err)
	}
	fmt.Fprintf(a.out, "\nDocument saved to %s\n", cfg.Output)

	if cfg.Journal == "" {
		return nil
	}
	f, err := os.Create(cfg.Journal)
	if err != nil {
		return fmt.Errorf("writing journal %s: %w", cfg.Journal, err)
	}
	defer f.Close()
	if _, err := a.session.Journal().WriteTo(f); err != nil {
		return fmt.Errorf("writing journal %s: %w", cfg.Journal, err)
	}
	return nil
}

func (a *App) config() config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg
}

func (a *App) setConfig(cfg config.Config) {
	a.mu.Lock()
	defer a.mu.Unlock()
	// Input is fixed for the lifetime of the session; everything else
	// may change underneath a running loop.
	cfg.Input = a.cfg.Input
	a.cfg = cfg
}

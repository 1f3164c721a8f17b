package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tasks/internal/config"
	"github.com/Makepad-fr/tasks/internal/logging"
	"github.com/Makepad-fr/tasks/internal/model"
	"github.com/Makepad-fr/tasks/internal/store"
	"github.com/Makepad-fr/tasks/internal/store/jsonstore"
	"github.com/Makepad-fr/tasks/internal/store/sqlitestore"
	"github.com/Makepad-fr/tasks/internal/tasks"
	"github.com/Makepad-fr/tasks/internal/ui"
)

type rootFlags struct {
	configPath  string
	dataDir     string
	backend     string
	theme       string
	logLevel    string
	persistTags bool
}

// app carries what every subcommand needs.
type app struct {
	out, errOut io.Writer
	flags       rootFlags
	cfg         *config.Config
	closers     []io.Closer
}

func (a *app) configure(cmd *cobra.Command) error {
	var o config.Overrides
	changed := cmd.Flags().Changed
	if changed("data-dir") {
		o.DataDir = &a.flags.dataDir
	}
	if changed("backend") {
		o.Backend = &a.flags.backend
	}
	if changed("theme") {
		o.Theme = &a.flags.theme
	}
	if changed("log-level") {
		o.LogLevel = &a.flags.logLevel
	}
	if changed("persist-tags") {
		o.PersistTags = &a.flags.persistTags
	}
	cfg, err := config.Load(a.flags.configPath, o)
	if err != nil {
		return usagef("config: %v", err)
	}
	a.cfg = cfg
	ui.SetTheme(cfg.Theme)
	return nil
}

// logger writes to stderr, or to the data dir while the TUI owns the terminal.
func (a *app) logger(toFile bool) (*log.Logger, error) {
	opts := logging.DefaultOptions()
	opts.Level = a.cfg.LogLevel
	if !toFile {
		return logging.New(a.errOut, opts)
	}
	l, f, err := logging.OpenFile(a.cfg.DataDir, opts)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, f)
	return l, nil
}

func (a *app) openSlot() (store.Slot, error) {
	switch a.cfg.Backend {
	case config.BackendSQLite:
		return sqlitestore.Open(a.cfg.DataDir)
	default:
		return jsonstore.Open(a.cfg.DataDir)
	}
}

// openStore wires slot -> adapter -> Task Store.
func (a *app) openStore(logToFile bool) (*tasks.Store, error) {
	logger, err := a.logger(logToFile)
	if err != nil {
		return nil, failure(fmt.Errorf("logger: %w", err))
	}
	slot, err := a.openSlot()
	if err != nil {
		return nil, failure(fmt.Errorf("open %s storage: %w", a.cfg.Backend, err))
	}
	a.closers = append(a.closers, slot)

	s, err := tasks.Open(store.NewAdapter(slot, logger),
		tasks.WithLogger(logger),
		tasks.WithPersistedTags(a.cfg.PersistTags),
	)
	if err != nil {
		return nil, failure(err)
	}
	return s, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			fmt.Fprintln(a.errOut, "close:", err)
		}
	}
	a.closers = nil
}

// saved turns a persistence warning into a command failure. The in-memory
// change already happened; the process is about to exit.
func saved(err error) error {
	if err != nil {
		return failure(fmt.Errorf("save: %w", err))
	}
	return nil
}

// resolve maps a 1-based index or an id (or unique id prefix) to a task.
// A number outside the index range is tried as an id prefix.
func resolve(s *tasks.Store, ref string) (model.Task, error) {
	all := s.Tasks()
	n, err := strconv.Atoi(ref)
	isIndex := err == nil
	if isIndex && n >= 1 && n <= len(all) {
		return all[n-1], nil
	}
	if t, ok := s.Task(model.ID(ref)); ok {
		return t, nil
	}
	var match []model.Task
	for _, t := range all {
		if strings.HasPrefix(string(t.ID), ref) {
			match = append(match, t)
		}
	}
	switch len(match) {
	case 0:
		if isIndex {
			return model.Task{}, usagef("index out of range: have %d, got %d", len(all), n)
		}
		return model.Task{}, usagef("no task matches %q", ref)
	case 1:
		return match[0], nil
	default:
		return model.Task{}, usagef("ambiguous task id prefix %q (%d matches)", ref, len(match))
	}
}

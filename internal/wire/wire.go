// Package wire provides dependency injection for the renux application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	cliadapter "github.com/example/renux/internal/adapters/cli"
	"github.com/example/renux/internal/adapters/filesystem"
	"github.com/example/renux/internal/adapters/sqlite"
	"github.com/example/renux/internal/app"
	"github.com/example/renux/internal/config"
	"github.com/example/renux/internal/db"
	"github.com/example/renux/internal/logging"
	"github.com/example/renux/internal/ports/primary"
	"github.com/example/renux/internal/ports/secondary"
)

// Settings control how the services are built. They must be set with
// Configure before the first service is requested.
type Settings struct {
	Config    *config.Config
	NoJournal bool
}

var (
	settings = Settings{Config: config.Default()}

	renameService primary.RenameService
	logger        *slog.Logger
	database      *sql.DB
	closeLog      func() error
	initErr       error
	once          sync.Once
)

// Configure sets the settings used to build the services. Calls after the
// services were built have no effect.
func Configure(s Settings) {
	if s.Config == nil {
		s.Config = config.Default()
	}
	settings = s
}

// RenameService returns the singleton RenameService instance.
func RenameService() (primary.RenameService, error) {
	once.Do(initServices)
	return renameService, initErr
}

// Logger returns the application logger.
func Logger() *slog.Logger {
	once.Do(initServices)
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cfg := settings.Config

	var err error
	logger, closeLog, err = logging.New(cfg.Log)
	if err != nil {
		initErr = fmt.Errorf("failed to initialize logging: %w", err)
		return
	}

	// Create adapters (secondary ports)
	fsAdapter := filesystem.NewDirectoryAdapter()

	// The journal is an audit trail; a journal that cannot be opened
	// disables journaling instead of failing the session.
	var journal secondary.JournalRepository
	if cfg.Journal.Enabled && !settings.NoJournal {
		database, err = db.Open(cfg.Journal.Path)
		if err != nil {
			logger.Warn("journal disabled", "path", cfg.Journal.Path, "error", err)
		} else {
			journal = sqlite.NewJournalRepository(database)
		}
	}

	// Create effect executor with injected filesystem
	executor := app.NewEffectExecutor(fsAdapter, logger)

	// Create services (primary ports implementation)
	renameService = app.NewRenameService(fsAdapter, journal, executor, logger, nil)
}

// Close releases the journal database and the log file.
func Close() error {
	var firstErr error
	if database != nil {
		if err := database.Close(); err != nil {
			firstErr = err
		}
	}
	if closeLog != nil {
		if err := closeLog(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// RenameAdapter returns a new RenameAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func RenameAdapter() (*cliadapter.RenameAdapter, error) {
	return RenameAdapterWithOutput(os.Stdout)
}

// RenameAdapterWithOutput returns a new RenameAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func RenameAdapterWithOutput(out io.Writer) (*cliadapter.RenameAdapter, error) {
	svc, err := RenameService()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewRenameAdapter(svc, out), nil
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/dossier/internal/client/config"
	"github.com/dmitrijs2005/dossier/internal/client/models"
	"github.com/dmitrijs2005/dossier/internal/client/render"
	"github.com/dmitrijs2005/dossier/internal/client/repositories/accounts"
	"github.com/dmitrijs2005/dossier/internal/client/repositories/kv"
	"github.com/dmitrijs2005/dossier/internal/client/services"
	"github.com/dmitrijs2005/dossier/internal/filex"
	"github.com/dmitrijs2005/dossier/internal/logging"
)

// sessionService is the part of services.SessionManager the CLI uses.
type sessionService interface {
	SignUp(ctx context.Context, in services.SignUpInput) services.Result
	SignIn(ctx context.Context, email, secret string) services.Result
	SignOut(ctx context.Context)
	UpdateProfile(ctx context.Context, patch models.ProfilePatch) error
	IsAuthenticated() bool
	CurrentProfile() (models.Profile, bool)
}

// preferenceService is the part of services.PreferenceStore the CLI uses.
type preferenceService interface {
	Theme(ctx context.Context) models.Theme
	SetTheme(ctx context.Context, t models.Theme) error
	Subscribe(fn services.ThemeObserver) (unsubscribe func())
}

type App struct {
	config   *config.Config
	session  sessionService
	prefs    preferenceService
	renderer *render.Renderer
	logger   logging.Logger
	reader   *bufio.Reader
	out      io.Writer

	closers []io.Closer
}

// NewApp prepares the data directory, opens the log file and the database,
// and wires the stores. The persisted session, if any, is restored here.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	dir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	c.DataDir = dir

	logFile, err := os.OpenFile(c.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	logger := logging.NewJSON(logFile, level)

	db, err := kv.OpenSQLite(ctx, c.DatabaseDSN())
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	app := newApp(ctx, c, kv.NewSQLiteStore(db), logger, os.Stdin, os.Stdout)
	app.closers = []io.Closer{db, logFile}
	logger.Info(ctx, "dossier started", "db", c.DatabaseDSN(), "authenticated", app.session.IsAuthenticated())
	return app, nil
}

// newApp wires the services over store. Split out of NewApp so tests can
// run the whole stack over a kv.MemoryStore.
func newApp(ctx context.Context, c *config.Config, store kv.Store, logger logging.Logger, in io.Reader, out io.Writer) *App {
	acc := accounts.NewStore(store, logger)
	prefs := services.NewPreferenceStore(store, logger)
	session := services.NewSessionManager(ctx, store, acc, logger)

	rd := render.New(out, prefs.Theme(ctx))
	prefs.Subscribe(rd.SetTheme)

	return &App{
		config:   c,
		session:  session,
		prefs:    prefs,
		renderer: rd,
		logger:   logger,
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close releases the database and the log file.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

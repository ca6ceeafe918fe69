package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrSnakeDoc/pokedex/internal/browse"
	"github.com/MrSnakeDoc/pokedex/internal/catalog"
	"github.com/MrSnakeDoc/pokedex/internal/config"
	"github.com/MrSnakeDoc/pokedex/internal/domain"
	"github.com/MrSnakeDoc/pokedex/internal/favorites"
	"github.com/MrSnakeDoc/pokedex/internal/logger"
	"github.com/MrSnakeDoc/pokedex/internal/querycache"
	"github.com/MrSnakeDoc/pokedex/internal/session"
	"github.com/MrSnakeDoc/pokedex/internal/store/memory"
	"github.com/MrSnakeDoc/pokedex/internal/store/sqlite"
	"github.com/MrSnakeDoc/pokedex/internal/ui"
	"github.com/MrSnakeDoc/pokedex/internal/urlstate"
	"github.com/MrSnakeDoc/pokedex/internal/utils"
)

// RunTUI runs the terminal browser starting from initialQuery until the
// user quits or the process is interrupted.
func RunTUI(initialQuery string) error {
	cfg := config.LoadTUI()

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	loggerClient := logger.NewWithOutput(cfg.LogLevel, false, cfg.LogFile)
	defer func() { _ = loggerClient.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The database is opened on first favorites access; a failure leaves
	// the store degraded (empty, no-op) for the session.
	var db *sqlite.Store
	favs := favorites.New(func(ctx context.Context) (favorites.Backend, error) {
		if cfg.Ephemeral {
			return memory.New().Favorites(), nil
		}
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		db = s
		return s.Favorites(), nil
	}, loggerClient.Named("favorites"), nil)
	defer func() {
		if db != nil {
			utils.CloseLogged(db, "sqlite", loggerClient)
		}
	}()

	cache := querycache.New(nil, loggerClient.Named("cache"), nil)
	service := browse.New(catalog.New(cfg.Catalog, nil), cache, favs)

	events, unsubscribe := favs.Subscribe()
	defer unsubscribe()

	query := domain.ParseQuery(initialQuery).Encode()
	history := urlstate.NewHistory(query)
	model := urlstate.New(history, query)
	defer model.Close()

	loggerClient.Info("Terminal browser starting",
		logger.String("query", model.Query()),
		logger.String("favorites", cfg.SQLitePath),
		logger.Bool("ephemeral", cfg.Ephemeral))

	app := ui.NewApp(ui.AppConfig{
		Context: ctx,
		Logger:  loggerClient.Named("ui"),
		Browser: service,
		URL:     model,
		History: history,
		Session: session.New(),
		Events:  events,
	})

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("terminal browser failed: %w", err)
	}
	return nil
}

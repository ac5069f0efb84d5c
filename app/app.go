package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/saverbot/bot"
	"github.com/m3rciful/saverbot/core/database"
	"github.com/m3rciful/saverbot/core/logger"
	tg "github.com/m3rciful/saverbot/core/telegram"
	"github.com/m3rciful/saverbot/core/telegram/router"
	"github.com/m3rciful/saverbot/dialog"
	"github.com/m3rciful/saverbot/service"
	"github.com/m3rciful/saverbot/storage"
)

// App holds the bootstrapped application components.
type App struct {
	cfg      *Config
	db       *sqlx.DB
	handlers *bot.Handlers
}

// itemSaver adapts the item service to the dialogue engine's narrower needs.
type itemSaver struct {
	items *service.Items
}

func (s itemSaver) SaveItem(ctx context.Context, userID int64, sectionName, itemName, description string) error {
	_, err := s.items.Save(ctx, userID, sectionName, itemName, description)
	if errors.Is(err, storage.ErrSectionNotFound) {
		return dialog.ErrSectionGone
	}
	return err
}

// Bootstrap initialises logging, runs migrations, connects to the database,
// and wires repositories, services, and the dialogue engine.
func Bootstrap(cfg *Config) (*App, error) {
	if err := logger.InitLogger(cfg.CoreConfig()); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if err := database.RunMigrations(cfg.Database); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sections := service.NewSections(storage.NewSectionRepo(db))
	items := service.NewItems(storage.NewItemRepo(db))

	engine := dialog.NewEngine(dialog.NewSessions(), sections, itemSaver{items: items})
	handlers := bot.NewHandlers(engine, sections, items)

	return &App{
		cfg:      cfg,
		db:       db,
		handlers: handlers,
	}, nil
}

// TelegramRunOptions assembles routes, middlewares, and lifecycle hooks.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg := tg.NewRegistry()
	if err := a.handlers.Register(reg); err != nil {
		return tg.RunOptions{}, fmt.Errorf("register handlers: %w", err)
	}

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.AdminID,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.MessageRoutes(a.handlers, reg, router.MessageOptions{
		Entry: a.handlers.Handle,
	})...)

	return tg.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(a.cfg.CoreConfig(), nil),
		Routes:      routes,
		OnStop: func(ctx context.Context, rt tg.Runtime) error {
			return a.Close()
		},
	}, nil
}

// Close releases application resources.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

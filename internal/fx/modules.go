package fx

import (
	"database/sql"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"bir-schedule/internal/config"
	"bir-schedule/internal/database"
	"bir-schedule/internal/espn"
	"bir-schedule/internal/logger"
	"bir-schedule/internal/schedule"
	"bir-schedule/internal/server"
	"bir-schedule/internal/service"
	"bir-schedule/internal/store"
)

func ProvideStore(db *sql.DB, log zerolog.Logger) store.Store {
	return store.NewSQLiteStore(db, log)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// store + core
	fx.Provide(ProvideStore),
	fx.Provide(schedule.NewReconciler),
	// api client
	fx.Provide(espn.NewClient),
	// svc
	fx.Provide(service.NewScheduleService),
	// server
	fx.Provide(server.New),
)

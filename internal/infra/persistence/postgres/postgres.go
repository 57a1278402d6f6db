package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"profilehub/config"
	"profilehub/internal/domain/lifecycle"
	"profilehub/internal/errors"
	"profilehub/internal/infra/metrics"

	"github.com/prometheus/client_golang/prometheus/collectors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	poolMonitorInterval      = 5 * time.Second
	poolWaitWarnThreshold    = 50 * time.Millisecond
	errMissingPostgresConfig = "postgres configuration is missing"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Recorder `optional:"true"`
}

// New opens the account store and ties the pool to the application lifecycle.
func New(params Params) (*gorm.DB, error) {
	if params.Config.Postgres == nil {
		return nil, errors.New(errMissingPostgresConfig)
	}

	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	logger := params.Logger.With(slog.String("component", "postgres"))
	db = db.Session(&gorm.Session{
		// Multi-table writes go through TransactionManager.Execute.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(logger, params.Config.Env.Debug),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	if params.Metrics != nil {
		if err := params.Metrics.Registry().Register(collectors.NewDBStatsCollector(sqlDB, params.Config.Env.ServiceName)); err != nil {
			return nil, errors.Wrap(err, "failed to register pool collector")
		}
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			go watchPoolWaits(monitorCtx, logger, sqlDB.Stats, poolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// watchPoolWaits warns when requests queue for a connection.
// Cumulative pool figures are exported by the DB stats collector.
func watchPoolWaits(ctx context.Context, logger *slog.Logger, stats func() sql.DBStats, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := stats()
			if attrs, slow := poolWaitAttrs(prev, cur); attrs != nil {
				level := slog.LevelDebug
				if slow {
					level = slog.LevelWarn
				}
				logger.LogAttrs(ctx, level, "Connection pool wait", attrs...)
			}
			prev = cur
		}
	}
}

// poolWaitAttrs describes the waits between two samples; nil means none happened.
func poolWaitAttrs(prev, cur sql.DBStats) (attrs []slog.Attr, slow bool) {
	waits := cur.WaitCount - prev.WaitCount
	if waits <= 0 {
		return nil, false
	}
	waited := cur.WaitDuration - prev.WaitDuration

	return []slog.Attr{
		slog.Int64("waits", waits),
		slog.Duration("waited", waited),
		slog.Duration("avg_wait", waited/time.Duration(waits)),
		slog.Int("max_open", cur.MaxOpenConnections),
		slog.Int("in_use", cur.InUse),
		slog.Int("idle", cur.Idle),
	}, waited >= poolWaitWarnThreshold
}

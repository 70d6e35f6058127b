// MerryWeather Time: staff attendance web application.
//
// @title                       MerryWeather Time API
// @version                     1.0
// @description                 Staff attendance: sessions, shifts, rules and notices.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/cenkalti/backoff/v4"
	"github.com/common-nighthawk/go-figure"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/api"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/api/handler"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/ports"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/service"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/infrastructure/db/memory"
	mongostore "github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/infrastructure/db/mongo"
	redisstore "github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/infrastructure/db/redis"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/pkg/config"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/pkg/logger"
)

const appName = "MerryWeather"

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "merryweather",
	})

	displayAppname(appName)
	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, err := openRecordStore(ctx, cfg, logger.For("store"))
	if err != nil {
		return err
	}
	defer records.close()

	sessionStore, closeSessions, err := openSessionStore(ctx, cfg, records.readiness, logger.For("session"))
	if err != nil {
		return err
	}
	defer closeSessions()

	verifier, err := service.NewCredentialVerifier(cfg.CredentialScheme)
	if err != nil {
		return err
	}

	sessionSvc := service.NewSessionService(records.users, sessionStore, verifier, cfg.Session.TTL, logger.For("session"))
	attendanceSvc := service.NewAttendanceService(records.shifts, logger.For("attendance"))
	adminSvc := service.NewAdminService(records.users, records.rules, records.notices, verifier, logger.For("admin"))
	dashboardSvc := service.NewDashboardService(attendanceSvc, records.users, records.rules, records.notices)
	bootstrapSvc := service.NewBootstrapService(records.users, verifier, service.AdminAccount{
		Email:      cfg.Admin.Email,
		Credential: cfg.Admin.Password,
		Name:       cfg.Admin.Name,
	}, cfg.Seed.Threshold, logger.For("bootstrap"))

	if err := bootstrapSvc.Provision(ctx, records.prepare, &backoff.StopBackOff{}); err != nil {
		if cfg.FailFast {
			return err
		}
		log.Error().Err(err).Msg("store setup failed; retrying in background")
		go provisionInBackground(ctx, bootstrapSvc, records.prepare, log)
	}

	e, err := api.NewRouter(api.Services{
		Sessions:   sessionSvc,
		Tokens:     service.NewTokenService(jwtSecret(cfg, log), cfg.Session.TTL),
		Attendance: attendanceSvc,
		Admin:      adminSvc,
		Bootstrap:  bootstrapSvc,
		Dashboard:  dashboardSvc,
	}, api.Options{
		CookieStore: cookieStore(cfg, log),
		CookieName:  cfg.Session.Cookie,
		SeedEnabled: cfg.Seed.Enabled,
		Assets: handler.Assets{
			LogoURL:       cfg.Assets.LogoURL,
			BackgroundURL: cfg.Assets.BackgroundURL,
		},
		Clock:     handler.Clock{Location: location(cfg.Timezone, log)},
		Readiness: records.readiness,
		Log:       logger.For("http"),
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Str("record_store", cfg.RecordStore).
			Str("session_store", cfg.Session.Store).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// provisionInBackground keeps retrying index creation and the admin account
// until the store answers or ctx ends.
func provisionInBackground(ctx context.Context, svc *service.BootstrapService, prepare func(context.Context) error, log zerolog.Logger) {
	b := backoff.NewExponentialBackOff()
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 0

	if err := svc.Provision(ctx, prepare, b); err != nil {
		if ctx.Err() == nil {
			log.Error().Err(err).Msg("store setup abandoned")
		}
		return
	}
	log.Info().Msg("store setup complete")
}

type recordStore struct {
	users     ports.UserRepository
	shifts    ports.ShiftRepository
	rules     ports.RuleRepository
	notices   ports.NoticeRepository
	readiness map[string]handler.PingFunc
	// prepare creates indexes; nil when the store needs none.
	prepare func(context.Context) error
	close   func()
}

// openRecordStore connects the configured record store. An unreachable
// MongoDB is logged and tolerated unless FAIL_FAST is set; requests then fail
// individually with a store-unavailable error until it comes back.
func openRecordStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*recordStore, error) {
	if cfg.RecordStore == "memory" {
		log.Warn().Msg("using in-memory record store; data is lost on restart")
		return &recordStore{
			users:     memory.NewUserRepository(),
			shifts:    memory.NewShiftRepository(),
			rules:     memory.NewRuleRepository(),
			notices:   memory.NewNoticeRepository(),
			readiness: map[string]handler.PingFunc{},
			close:     func() {},
		}, nil
	}

	client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if client == nil {
		return nil, err
	}
	if err != nil {
		if cfg.FailFast {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		log.Error().Err(err).Msg("mongodb unreachable; serving anyway")
	} else {
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")
	}

	return &recordStore{
		users:   mongostore.NewUserRepository(db),
		shifts:  mongostore.NewShiftRepository(db),
		rules:   mongostore.NewRuleRepository(db),
		notices: mongostore.NewNoticeRepository(db),
		readiness: map[string]handler.PingFunc{
			"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
		},
		prepare: func(ctx context.Context) error { return mongostore.EnsureIndexes(ctx, db) },
		close: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		},
	}, nil
}

// openSessionStore returns the Redis store when configured and reachable,
// the in-memory store otherwise.
func openSessionStore(
	ctx context.Context,
	cfg *config.Config,
	readiness map[string]handler.PingFunc,
	log zerolog.Logger,
) (ports.SessionStore, func(), error) {
	if cfg.Session.Store == "redis" {
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err == nil {
			readiness["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
			log.Info().Str("addr", cfg.Redis.Addr).Msg("redis session store")
			return redisstore.NewSessionStore(client), func() { _ = client.Close() }, nil
		}
		if cfg.FailFast {
			return nil, nil, err
		}
		log.Error().Err(err).Msg("redis unreachable; falling back to in-memory sessions")
	}

	store := memory.NewSessionStore()
	sweepCtx, cancel := context.WithCancel(ctx)
	go store.Run(sweepCtx, time.Minute)
	return store, cancel, nil
}

func cookieStore(cfg *config.Config, log zerolog.Logger) sessions.Store {
	key := []byte(cfg.Session.Secret)
	if len(key) == 0 {
		log.Warn().Msg("SESSION_SECRET not set; using a random key, sessions end on restart")
		key = securecookie.GenerateRandomKey(32)
	}
	return handler.NewCookieStore(key, cfg.Session.TTL, !cfg.IsDevelopment())
}

func jwtSecret(cfg *config.Config, log zerolog.Logger) string {
	if cfg.JWTSecret != "" {
		return cfg.JWTSecret
	}
	log.Warn().Msg("JWT_SECRET not set; API tokens end on restart")
	return hex.EncodeToString(securecookie.GenerateRandomKey(32))
}

func location(name string, log zerolog.Logger) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn().Err(err).Str("timezone", name).Msg("unknown time zone; using UTC")
		return time.UTC
	}
	return loc
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shipfwd/notifyd/modules/notify"
	"github.com/shipfwd/notifyd/pkg/config"
	"github.com/shipfwd/notifyd/pkg/httpserver"
	"github.com/shipfwd/notifyd/pkg/logger"
	"github.com/shipfwd/notifyd/pkg/mongo"
	"github.com/shipfwd/notifyd/pkg/notification"
	"github.com/shipfwd/notifyd/pkg/preference"
	"github.com/shipfwd/notifyd/pkg/redis"
	"github.com/shipfwd/notifyd/pkg/requestid"
)

type appConfig struct {
	Environment    string   `env:"ENVIRONMENT" envDefault:"development"`
	ServiceName    string   `env:"SERVICE_NAME" envDefault:"notifyd"`
	DatabaseName   string   `env:"MONGODB_DATABASE" envDefault:"notifyd"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	RedisEnabled   bool     `env:"REDIS_ENABLED" envDefault:"true"`
	CountCacheTTL  int      `env:"UNREAD_COUNT_CACHE_TTL_SECONDS" envDefault:"30"`
}

func main() {
	ctx := context.Background()

	var (
		appCfg   appConfig
		mongoCfg mongo.Config
		redisCfg redis.Config
		httpCfg  httpserver.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&httpCfg)

	log := logger.New(
		logger.WithEnvironment(appCfg.Environment, appCfg.ServiceName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	db, err := mongo.NewWithDatabase(ctx, mongoCfg, appCfg.DatabaseName)
	if err != nil {
		log.ErrorContext(ctx, "mongodb connection failed", logger.Error(err))
		os.Exit(1)
	}
	defer func() {
		_ = db.Client().Disconnect(context.Background())
	}()

	notificationStorage := notification.NewMongoStorage(db)
	if err := notificationStorage.EnsureIndexes(ctx); err != nil {
		log.ErrorContext(ctx, "notification index creation failed", logger.Error(err))
		os.Exit(1)
	}
	preferenceStorage := preference.NewMongoStorage(db)
	if err := preferenceStorage.EnsureIndexes(ctx); err != nil {
		log.ErrorContext(ctx, "preference index creation failed", logger.Error(err))
		os.Exit(1)
	}

	healthchecks := []func(context.Context) error{mongo.Healthcheck(db.Client())}

	var countCache *notification.CountCache
	if appCfg.RedisEnabled {
		redisClient, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			log.ErrorContext(ctx, "redis connection failed", logger.Error(err))
			os.Exit(1)
		}
		defer func() {
			_ = redisClient.Close()
		}()

		countCache = notification.NewCountCache(
			redis.NewStorage(redisClient),
			time.Duration(appCfg.CountCacheTTL)*time.Second,
		)
		healthchecks = append(healthchecks, redis.Healthcheck(redisClient))
	}

	serviceOpts := []notification.ServiceOption{notification.WithServiceLogger(log)}
	queryOpts := []notification.QueryOption{notification.WithQueryLogger(log)}
	if countCache != nil {
		serviceOpts = append(serviceOpts, notification.WithServiceCountCache(countCache))
		queryOpts = append(queryOpts, notification.WithQueryCountCache(countCache))
	}

	notificationService := notification.NewService(notificationStorage, serviceOpts...)
	notificationQuery := notification.NewQuery(notificationStorage, queryOpts...)
	preferenceResolver := preference.NewResolver(preferenceStorage, preference.WithResolverLogger(log))

	r := chi.NewRouter()
	r.Get("/health", httpserver.HealthCheckHandler(ctx, log, healthchecks...))
	r.Mount("/api", notify.Router(notify.RouterOptions{
		Notifications:  notify.NewNotificationHandler(notificationService, notificationQuery, log),
		Preferences:    notify.NewPreferenceHandler(preferenceResolver, log),
		AllowedOrigins: appCfg.AllowedOrigins,
	}))
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(appCfg.ServiceName + " is running\n"))
	})

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil {
		log.ErrorContext(ctx, "server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

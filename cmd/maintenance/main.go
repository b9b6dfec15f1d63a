package main

import (
	"context"
	"flag"
	"net"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/stravastats/internal/activities"
	"github.com/2beens/stravastats/internal/auth"
	"github.com/2beens/stravastats/internal/config"
	"github.com/2beens/stravastats/internal/db"
	"github.com/2beens/stravastats/internal/logging"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	cleanSessions := flag.Bool("clean-sessions", false, "remove expired login sessions")
	purgeAthlete := flag.Int64("purge-history", 0, "athlete id whose stored activity history is removed")
	timeout := flag.Duration("timeout", time.Minute, "timeout for the whole run")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	if err := logging.Setup(logging.LoggerSetupParams{
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
		Environment:   cfg.Environment,
	}); err != nil {
		log.Errorf("logging setup: %s", err)
	}

	if !*cleanSessions && *purgeAthlete == 0 {
		log.Fatalln("nothing to do, use -clean-sessions and/or -purge-history <athlete id>")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: os.Getenv("STRAVASTATS_REDIS_PASS"),
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("ping redis: %s", err)
	}

	if *cleanSessions {
		log.Println("cleaning login sessions ...")
		auth.NewSessionStore(cfg.SessionTTL.Duration, rdb).ScanAndClean(ctx)
	}

	if *purgeAthlete != 0 {
		store, closeStore, err := openStore(ctx, cfg, rdb)
		if err != nil {
			log.Fatalf("open activities store: %s", err)
		}
		defer closeStore()

		if err := store.Delete(ctx, *purgeAthlete); err != nil {
			log.Fatalf("purge history of athlete [%d]: %s", *purgeAthlete, err)
		}
		log.Printf("history of athlete [%d] purged from the %s store", *purgeAthlete, cfg.ActivitiesStore)
	}
}

func openStore(ctx context.Context, cfg *config.Config, rdb *redis.Client) (activities.Store, func(), error) {
	if cfg.ActivitiesStore != config.ActivitiesStorePostgres {
		return activities.NewRedisStore(rdb, cfg.ActivitiesCacheTTL.Duration), func() {}, nil
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     os.Getenv("STRAVASTATS_POSTGRES_USER"),
		DBPassword: os.Getenv("STRAVASTATS_POSTGRES_PASS"),
	})
	if err != nil {
		return nil, nil, err
	}
	return activities.NewPostgresStore(dbPool), dbPool.Close, nil
}

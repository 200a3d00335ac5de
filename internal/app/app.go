package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"todolist/internal/config"
	"todolist/internal/repo"
	"todolist/migrations"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg    config.Config
	db     *sqlx.DB
	redis  *redis.Client
	router *gin.Engine
}

func New(cfg config.Config) (*App, error) {
	a := &App{cfg: cfg}

	rdb, err := newRedis(cfg.Redis)
	if err != nil {
		return nil, err
	}
	a.redis = rdb
	deps := Deps{Redis: rdb}

	switch cfg.Store {
	case config.StoreMemory:
		log.Printf("using in-memory store, data will not survive a restart")
		mem := repo.NewMemoryStore()
		deps.Users = mem.Users()
		deps.Items = mem.Items()
	default:
		db, err := OpenPostgres(cfg.PG.DSN)
		if err != nil {
			a.redis.Close()
			return nil, err
		}
		a.db = db
		if cfg.PG.Migrate {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			err := migrations.Up(ctx, db.DB)
			cancel()
			if err != nil {
				a.redis.Close()
				a.db.Close()
				return nil, err
			}
		}
		deps.Users = repo.NewPGUserRepo(db)
		deps.Items = repo.NewPGItemRepo(db)
	}

	router, err := NewRouter(cfg, deps)
	if err != nil {
		_ = a.Close(context.Background())
		return nil, err
	}
	a.router = router
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	_ = ctx
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
	return nil
}

// OpenPostgres connects through the pgx stdlib driver and checks the connection.
func OpenPostgres(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("pg open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}
	return db, nil
}

func newRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

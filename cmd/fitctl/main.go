package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/2beens/getfitpro/internal/coach"
	"github.com/2beens/getfitpro/internal/config"
	"github.com/2beens/getfitpro/internal/db"
	"github.com/2beens/getfitpro/internal/gate"
	"github.com/2beens/getfitpro/internal/kvstore"
	"github.com/2beens/getfitpro/internal/logging"
	"github.com/2beens/getfitpro/internal/profile"
	"github.com/2beens/getfitpro/internal/quiz"
	"github.com/2beens/getfitpro/internal/telemetry/metrics"
	"github.com/2beens/getfitpro/internal/workoutlog"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
)

// storeHandle keeps the clients behind a store so they can be closed.
type storeHandle struct {
	cfg    *config.Config
	store  kvstore.Store
	redis  *redis.Client
	dbPool *pgxpool.Pool
}

func (h *storeHandle) Close() error {
	var err error
	err = multierr.Append(err, h.store.Close())
	if h.redis != nil {
		err = multierr.Append(err, h.redis.Close())
	}
	if h.dbPool != nil {
		h.dbPool.Close()
	}
	return err
}

func openStore(c *cli.Context) (*storeHandle, error) {
	cfg, err := config.Load(c.String("env"), c.String("config"))
	if err != nil {
		return nil, err
	}

	h := &storeHandle{cfg: cfg}
	switch cfg.StoreEngine {
	case config.StoreEngineRedis:
		h.redis = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: os.Getenv("GETFIT_REDIS_PASS"),
		})
	case config.StoreEnginePostgres:
		h.dbPool, err = db.NewDBPool(c.Context, db.NewDBPoolParams{
			DBHost:     cfg.PostgresHost,
			DBPort:     cfg.PostgresPort,
			DBName:     cfg.PostgresDBName,
			DBUser:     os.Getenv("GETFIT_POSTGRES_USER"),
			DBPassword: os.Getenv("GETFIT_POSTGRES_PASS"),
			MaxConns:   2,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
	}

	h.store, err = kvstore.NewByEngine(c.Context, kvstore.Params{
		Engine:     cfg.StoreEngine,
		KeyPrefix:  cfg.StoreKeyPrefix,
		Redis:      h.redis,
		Postgres:   h.dbPool,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		if h.redis != nil {
			_ = h.redis.Close()
		}
		if h.dbPool != nil {
			h.dbPool.Close()
		}
		return nil, fmt.Errorf("new store: %w", err)
	}
	return h, nil
}

func withStore(fn func(c *cli.Context, h *storeHandle) error) cli.ActionFunc {
	return func(c *cli.Context) (err error) {
		h, err := openStore(c)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, h.Close())
		}()
		return fn(c, h)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func showProfile(c *cli.Context, h *storeHandle) error {
	p, err := profile.NewRepo(h.store).Load(c.Context)
	if err != nil {
		return err
	}
	return printJSON(p)
}

func resetProgress(c *cli.Context, h *storeHandle) error {
	coachClient := coach.NewClient(h.cfg.CoachBaseURL, &http.Client{
		Timeout: time.Duration(h.cfg.CoachTimeoutSeconds) * time.Second,
	})
	service := profile.NewService(
		h.store,
		coachClient,
		metrics.NewManager("getfit", "fitctl", prometheus.NewRegistry()),
		profile.ServiceOptions{TrackLongestStreak: h.cfg.TrackLongestStreak},
	)

	result, err := service.ResetProgress(c.Context)
	if err != nil {
		return err
	}
	if !result.RemoteAcknowledged {
		log.Warnf("coach did not acknowledge the reset: %s", result.RemoteError)
	}
	return printJSON(result)
}

func exportLog(c *cli.Context, h *storeHandle) error {
	out := c.String("out")
	if out == "" {
		return errors.New("--out is required")
	}
	repo := workoutlog.NewRepo(h.store)
	read := repo.All
	if c.Bool("clear") {
		read = repo.Drain
	}
	entries, err := read(c.Context)
	if err != nil {
		return err
	}
	if err := writeLogWorkbook(entries, out); err != nil {
		if c.Bool("clear") {
			// the log is already empty, the workbook is the only copy left
			return multierr.Append(err, restoreLog(c.Context, repo, entries))
		}
		return err
	}
	log.Infof("exported %d workouts to [%s]", len(entries), out)
	return nil
}

func restoreLog(ctx context.Context, repo *workoutlog.Repo, entries []workoutlog.Entry) error {
	for _, e := range entries {
		if err := repo.Append(ctx, e); err != nil {
			return fmt.Errorf("restore drained log: %w", err)
		}
	}
	log.Warnf("export failed, restored %d workouts to the log", len(entries))
	return nil
}

func onboarded(c *cli.Context, h *storeHandle) error {
	ok, err := gate.New(quiz.NewRepo(h.store)).IsOnboarded(c.Context)
	if err != nil {
		return err
	}
	fmt.Println(ok)
	if !ok {
		return cli.Exit("", 1)
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:     "fitctl",
		HelpName: "fitctl",
		Usage:    "GetFit Pro admin tool",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Value: "development",
				Usage: "environment [prod | production | dev | development]",
			},
			&cli.StringFlag{
				Name:  "config",
				Value: "./config.toml",
				Usage: "path for the TOML config file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "log level",
			},
		},
		Before: func(c *cli.Context) error {
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("load .env: %w", err)
			}
			// stdout is reserved for command output
			log.SetOutput(os.Stderr)
			log.SetLevel(logging.GetLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "profile",
				Usage:  "print the stored profile",
				Action: withStore(showProfile),
			},
			{
				Name:   "reset",
				Usage:  "reset workout progress locally and on the coach backend",
				Action: withStore(resetProgress),
			},
			{
				Name:  "export",
				Usage: "export the workout log to a spreadsheet",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Value:   "workouts.xlsx",
						Usage:   "output xlsx file",
					},
				},
				Action: withStore(exportLog),
			},
			{
				Name:   "onboarded",
				Usage:  "report whether the onboarding quiz is completed",
				Action: withStore(onboarded),
			},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

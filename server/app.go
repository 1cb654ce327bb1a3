package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tacops/config"
	"tacops/internal/api"
	"tacops/internal/db"
	"tacops/internal/health"
	"tacops/internal/logs"
	"tacops/internal/metrics"
	"tacops/internal/middleware"
	"tacops/internal/models"
	"tacops/internal/repo"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type App struct {
	cfg        *config.Config
	db         *gorm.DB
	Router     *mux.Router
	httpServer *http.Server

	ctx    context.Context
	cancel context.CancelFunc
}

func (a *App) Initialize(cfg *config.Config) {
	a.cfg = cfg

	logs.Init(logs.Options{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
		File:   a.cfg.Logging.File,
	})

	d, err := db.Open(a.cfg.Database.Driver, a.cfg.Database.DSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	a.db = d

	// referenced tables first, so foreign keys can be created
	if err := a.db.AutoMigrate(
		&models.User{},
		&models.Squadron{},
		&models.ACP{},
		&models.Mission{},
		&models.MissionAssignment{},
	); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	// a broken relation map fails the process, not a request
	if err := models.ValidateRelations(); err != nil {
		log.Fatalf("schema relations: %v", err)
	}

	users := repo.NewUserStore(a.db)
	h := api.New(
		repo.NewSquadronStore(a.db),
		repo.NewACPStore(a.db),
		repo.NewMissionStore(a.db),
	)
	m := metrics.New(a.cfg.Metrics.Namespace)

	a.Router = mux.NewRouter().StrictSlash(true)
	a.Router.Use(
		middleware.RequestID,
		middleware.Recoverer,
		middleware.CallerIdentity(users),
		middleware.Metrics(m),
		middleware.LoggerMW,
	)

	health.RegisterRoutes(a.Router, a.db)
	api.RegisterRoutes(a.Router, h)
	a.Router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	_ = a.Router.Walk(func(rt *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, _ := rt.GetPathTemplate()
		methods, _ := rt.GetMethods()
		if len(methods) == 0 {
			methods = []string{"ANY"}
		}
		log.Printf("route: %-6v %s", methods, path)
		return nil
	})
}

func (a *App) Run() error {
	if a.Router == nil || a.cfg == nil {
		return fmt.Errorf("server not initialized")
	}

	bind := net.JoinHostPort(a.cfg.Server.Address, a.cfg.Server.HTTPPort)

	a.ctx, a.cancel = context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigs
		logs.Logger.Infof("shutdown signal: %s", s)
		a.cancel()
	}()

	a.httpServer = &http.Server{
		Addr:              bind,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logs.Logger.Infof("HTTP listening on %s", bind)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logs.Logger.Fatalf("http server error: %v", err)
		}
	}()

	<-a.ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logs.Logger.Errorf("http shutdown: %v", err)
	}
	return nil
}

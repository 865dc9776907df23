package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/aradovic23/drinks-viewer/internal/cfg"
	v1Http "github.com/aradovic23/drinks-viewer/internal/delivery/v1/http"
	"github.com/aradovic23/drinks-viewer/internal/infrastructure/kafka"
	minioInfra "github.com/aradovic23/drinks-viewer/internal/infrastructure/minio"
	"github.com/aradovic23/drinks-viewer/internal/infrastructure/unsplash"
	s3Repo "github.com/aradovic23/drinks-viewer/internal/repository/minio"
	"github.com/aradovic23/drinks-viewer/internal/repository/pgdb"
	pgdbConv "github.com/aradovic23/drinks-viewer/internal/repository/pgdb/converter"
	"github.com/aradovic23/drinks-viewer/internal/repository/redis"
	redisConv "github.com/aradovic23/drinks-viewer/internal/repository/redis/converter"
	"github.com/aradovic23/drinks-viewer/internal/usecase"
	"github.com/aradovic23/drinks-viewer/pkg/clients"
	"github.com/aradovic23/drinks-viewer/pkg/closer"
	"github.com/aradovic23/drinks-viewer/pkg/e"
	"github.com/aradovic23/drinks-viewer/pkg/logger"
	"github.com/aradovic23/drinks-viewer/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const shutdownTimeout = 10 * time.Second

// App собирает все зависимости сервиса каталога и управляет их жизненным циклом.
type App struct {
	cfg     *config.Config
	logger  logger.Logger
	httpSrv *v1Http.Server
	worker  *kafka.OutboxWorker
	closer  *closer.Closer

	workerCtx    context.Context
	workerCancel context.CancelFunc
}

// NewApp инициализирует хранилища, инфраструктуру и HTTP-сервер.
// Ресурсы регистрируются в closer и закрываются в обратном порядке.
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	cl := closer.NewCloser(0)

	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		db.Close()
		log.Infof("database pool closed")
		return nil
	})

	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.NewProductConverterImpl())
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, pgdbConv.NewCategoryConverterImpl())
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.NewOutboxEventConverterImpl())

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	cacheRepo := redis.NewCacheRepo(redisClient, redisConv.NewCatalogConverterImpl(), cfg.Redis, log)

	minioClient, err := clients.NewMinIOClient(cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	minioCancel()

	workerCtx, workerCancel := context.WithCancel(context.Background())

	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)
	imagesInfra := minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio, log, workerCtx)
	cl.Add(func(ctx context.Context) error {
		return imagesInfra.WaitForCleanup(ctx)
	})

	imageSearch := unsplash.NewUnsplashInfrastructure(cfg.Unsplash, log)

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		workerCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		workerCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	worker := kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)
	cl.Add(func(ctx context.Context) error {
		workerCancel()
		worker.Stop()
		log.Infof("outbox worker stopped")
		return nil
	})

	catalogUC := usecase.NewCatalogUC(
		productRepo,
		categoryRepo,
		outboxRepo,
		cacheRepo,
		db.Pool,
		imagesInfra,
		imageSearch,
		log,
	)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(catalogUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)
	cl.Add(func(ctx context.Context) error {
		return httpSrv.Stop(ctx)
	})

	return &App{
		cfg:          cfg,
		logger:       log,
		httpSrv:      httpSrv,
		worker:       worker,
		closer:       cl,
		workerCtx:    workerCtx,
		workerCancel: workerCancel,
	}, nil
}

// Run запускает outbox-воркер и HTTP-сервер и блокируется до сигнала
// завершения либо фатальной ошибки сервера.
func (a *App) Run() error {
	a.worker.Start(a.workerCtx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "graceful shutdown finished with errors")
		if appErr == nil {
			appErr = err
		}
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(log logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(log); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	myPostgres "github.com/clipstream/clipstream/internal/adapters/db/postgres"
	s3storage "github.com/clipstream/clipstream/internal/adapters/storage/s3"
	transport "github.com/clipstream/clipstream/internal/adapters/transport/http"
	"github.com/clipstream/clipstream/internal/app/content"
	"github.com/clipstream/clipstream/internal/app/password"
	"github.com/clipstream/clipstream/internal/app/session"
	apptoken "github.com/clipstream/clipstream/internal/app/token"
	"github.com/clipstream/clipstream/internal/app/validation"
	"github.com/clipstream/clipstream/internal/infra/config"
	lg "github.com/clipstream/clipstream/internal/infra/log"
	"github.com/clipstream/clipstream/internal/migrate"
	"golang.org/x/sync/errgroup"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	storage, err := s3storage.New(context.Background(), cfg)
	if err != nil {
		zapLog.Fatal("failed to init media storage", zap.Error(err))
	}

	validate := validation.New()
	codec := apptoken.NewCodec(cfg)
	hasher := password.NewHasher(cfg.PasswordPepper)

	userRepo := myPostgres.NewPostgresUserRepo(db)
	postRepo := myPostgres.NewPostgresPostRepo(db)
	videoRepo := myPostgres.NewPostgresVideoRepo(db)

	sessionSvc := session.New(userRepo, codec, hasher, storage, validate)
	postSvc := content.NewPostService(postRepo, userRepo, validate)
	videoSvc := content.NewVideoService(videoRepo, storage, validate)

	router := transport.NewRouter(cfg, zapLog,
		sessionSvc,
		transport.NewAuthHandler(sessionSvc, cfg, zapLog),
		transport.NewPostHandler(postSvc),
		transport.NewVideoHandler(videoSvc),
	)

	srv := &http.Server{Addr: cfg.HTTPAddress, Handler: router}

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, _ := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		zapLog.Info("http server listening", zap.String("addr", cfg.HTTPAddress))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLog.Info("shutdown signal received")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/checkout-service/config"
	"github.com/example/checkout-service/internal/adapter/gateway"
	"github.com/example/checkout-service/internal/adapter/httpapi"
	"github.com/example/checkout-service/internal/adapter/mailer"
	"github.com/example/checkout-service/internal/adapter/natsstan"
	"github.com/example/checkout-service/internal/adapter/repo"
	"github.com/example/checkout-service/internal/domain"
	"github.com/example/checkout-service/internal/usecase"
	"github.com/example/checkout-service/logging"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	logger := logging.GetSugaredLogger()
	defer logger.Sync()

	cfg := config.GetConfig()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURI)
	if err != nil {
		logger.Fatalw("db connect", "error", err)
	}
	defer pool.Close()

	if err := repo.EnsureSchema(ctx, pool); err != nil {
		logger.Fatalw("init schema", "error", err)
	}

	var notifier domain.Notifier
	if cfg.SMTPHost != "" {
		notifier = mailer.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MerchantEmail)
	}

	var publisher domain.EventPublisher
	if cfg.NatsURL != "" {
		p, err := natsstan.Connect(cfg.StanClusterID, cfg.StanClientID, cfg.NatsURL, cfg.StanSubject)
		if err != nil {
			// события заказов best-effort, сервис стартует и без STAN
			logger.Errorw("stan connect", "error", err)
		} else {
			defer p.Close()
			publisher = p
		}
	}

	ucCreate := usecase.CreateGatewayOrder{
		Gateway: gateway.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
	}
	ucSave := usecase.SaveOrder{
		Repo:      repo.NewPostgresOrderRepo(pool),
		Notifier:  notifier,
		Publisher: publisher,
		KeySecret: cfg.RazorpayKeySecret,
		Logger:    logger,
	}

	server := httpapi.NewServer(ucCreate, ucSave, cfg.RazorpayKeyID, cfg.AllowedOrigins, logger)

	srv := &http.Server{Addr: cfg.RunAddress, Handler: server.Router}
	go func() {
		logger.Infow("http listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalw("http", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = srv.Shutdown(shutdownCtx)
}

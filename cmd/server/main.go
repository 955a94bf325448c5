package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/farmace/beneficios/internal/application/service"
	"github.com/farmace/beneficios/internal/config"
	"github.com/farmace/beneficios/internal/domain/event"
	"github.com/farmace/beneficios/internal/email"
	"github.com/farmace/beneficios/internal/excel"
	httpserver "github.com/farmace/beneficios/internal/interfaces/http"
	"github.com/farmace/beneficios/internal/pdf"
	"github.com/farmace/beneficios/internal/qrcode"
	"github.com/farmace/beneficios/internal/repository"
	"github.com/farmace/beneficios/pkg/database"
	"github.com/farmace/beneficios/pkg/utils"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments set the variables directly
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting benefits voucher portal",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	db, err := database.Open(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	dispatcher := event.NewDispatcher(logger)
	defer dispatcher.Close()

	dispatcher.SubscribeNamed(event.TypeVoucherRedeemed, "redemption-log", func(ctx context.Context, evt *event.Event) error {
		logger.Info("Voucher redeemed", zap.String("voucher_id", evt.VoucherID))
		return nil
	})

	voucherRepo := repository.NewVoucherRepository(db.DB, dispatcher, logger)
	notificationRepo := repository.NewNotificationRepository(db.DB, dispatcher, logger)

	codeGen := qrcode.NewGenerator(256)
	renderer := pdf.NewRenderer(cfg.Voucher.CompanyName, logger)
	emailSender := email.NewSender(email.Config{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port,
		User:       cfg.SMTP.User,
		Password:   cfg.SMTP.Password,
		SenderName: cfg.SMTP.SenderName,
		Timeout:    cfg.SMTP.Timeout,
	}, logger)

	issuance := service.NewIssuanceService(
		voucherRepo,
		codeGen,
		renderer,
		emailSender,
		dispatcher,
		cfg.Voucher.CompanyName,
		cfg.Voucher.ValidityDays,
		logger,
	)
	redemption := service.NewRedemptionService(voucherRepo, cfg.Voucher.SessionTTL, cfg.Voucher.EnforceValidity, logger)
	invoices := service.NewInvoiceService(
		voucherRepo,
		excel.NewInvoiceExporter(cfg.Voucher.CompanyName, logger),
		logger,
	)
	notifications := service.NewNotificationService(notificationRepo, logger)

	handlers := httpserver.NewHandlers(issuance, redemption, invoices, notifications, voucherRepo, logger)
	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, handlers, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}

package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/hackerxuz77-cell/python-course-bot/internal/bot"
	"github.com/hackerxuz77-cell/python-course-bot/internal/config"
	"github.com/hackerxuz77-cell/python-course-bot/internal/repository"
	"github.com/hackerxuz77-cell/python-course-bot/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	penaltyRepo := repository.NewPenaltyRepository(db)
	reportRepo := repository.NewReportRepository(db)

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("bot api: %v", err)
	}
	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	notifier := bot.NewTelegramNotifier(api)

	deadlineSvc := service.NewDeadlineService(taskRepo, notifier, cfg.TaskDeadline)
	penaltySvc := service.NewPenaltyService(penaltyRepo, notifier, cfg.PenaltyThreshold, cfg.PenaltyAmount, cfg.BasePayment, cfg.RepeatThresholdNotice)
	registrySvc := service.NewRegistryService(userRepo, taskRepo, deadlineSvc, penaltySvc, cfg.TaskDeadline, cfg.PenaltyAmount)
	broadcastSvc := service.NewBroadcastService(userRepo, notifier, cfg.PaymentWarningWindow)

	if err := deadlineSvc.RearmPending(ctx); err != nil {
		log.Fatalf("rearm deadlines: %v", err)
	}
	defer deadlineSvc.Stop()

	scheduler := service.NewSchedulerService(time.Local)
	if _, err := scheduler.ScheduleDaily(cfg.DailyBroadcastTime, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := broadcastSvc.SendDailyPrompts(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("daily broadcast: %v", err)
		}
	}); err != nil {
		log.Fatalf("schedule broadcast: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	telegramBot := bot.New(api, &cfg, userRepo, reportRepo, registrySvc, broadcastSvc)

	log.Println("Course bot started.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}

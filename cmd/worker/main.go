package main

import (
	"context"
	"os/signal"
	"syscall"

	"Fishing_Forum/internal/config"
	"Fishing_Forum/internal/pkg"
	"Fishing_Forum/internal/task"

	"go.uber.org/zap"
)

// worker 消费邮件任务并通过 SMTP 发送，失败只记录日志
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err = pkg.InitLogger(cfg.LogLevel, cfg.Debug); err != nil {
		panic(err)
	}
	defer pkg.Logger.Sync()

	mailer := pkg.NewSMTPMailer(pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
	h := task.NewEmailHandler(mailer, cfg.BackendURL)

	consumer := pkg.NewKafkaConsumer(pkg.KafkaConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaEmailTopic,
		GroupID: cfg.KafkaGroupID,
	})
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pkg.Logger.Info("email worker started",
		zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaEmailTopic))
	if err = consumer.Consume(ctx, h.Handle, task.LogFailure); err != nil {
		pkg.Logger.Error("consume stopped", zap.Error(err))
	}
	pkg.Logger.Info("email worker exited")
}

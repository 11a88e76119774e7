package service

import (
	"context"
	"time"

	"Fishing_Forum/internal/model"
	"Fishing_Forum/internal/pkg"
	"Fishing_Forum/internal/repository/interfaces"

	"go.uber.org/zap"
)

const (
	OutboxBatchSize = 100
	OutboxMaxRetry  = 5
)

// Publisher 消息投递方，KafkaProducer 实现
type Publisher interface {
	Send(ctx context.Context, key string, value []byte) error
}

// OutboxRelayer 把 email_outbox 中待投递的任务交给 broker，只负责投递，不负责发信结果
type OutboxRelayer struct {
	repo      interfaces.OutboxRepository
	pub       Publisher
	batchSize int
	maxRetry  int
	interval  time.Duration
}

func NewOutboxRelayer(repo interfaces.OutboxRepository, pub Publisher) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      repo,
		pub:       pub,
		batchSize: OutboxBatchSize,
		maxRetry:  OutboxMaxRetry,
		interval:  time.Second,
	}
}

// Run outbox启动器
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

// drainOnce 按批读取待投递记录，逐条发送
func (r *OutboxRelayer) drainOnce(ctx context.Context) int {
	rows, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		pkg.Logger.Error("outbox query failed", zap.Error(err))
		return 0
	}
	sent := 0
	for i := range rows {
		ob := rows[i]
		if err = r.publish(ctx, &ob); err != nil {
			pkg.Logger.Warn("outbox publish failed",
				zap.Uint64("outbox_id", ob.ID), zap.Int("retry", ob.Retry+1), zap.Error(err))
			if err = r.repo.MarkRetry(ctx, ob.ID, r.maxRetry); err != nil {
				pkg.Logger.Error("outbox retry update failed", zap.Uint64("outbox_id", ob.ID), zap.Error(err))
			}
			continue
		}
		if err = r.repo.MarkSent(ctx, ob.ID); err != nil {
			pkg.Logger.Error("outbox success update failed", zap.Uint64("outbox_id", ob.ID), zap.Error(err))
			continue
		}
		sent++
	}
	return sent
}

func (r *OutboxRelayer) publish(ctx context.Context, ob *model.EmailOutbox) error {
	return r.pub.Send(ctx, ob.Email, []byte(ob.Payload))
}

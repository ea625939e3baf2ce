package worker

import (
	"context"

	"github.com/blogicum/internal/logger"
	"github.com/blogicum/internal/observability"
	"github.com/blogicum/internal/provider"
	"github.com/blogicum/internal/queue"

	"github.com/hibiken/asynq"
	"go.opentelemetry.io/otel/attribute"
)

type commentNotifier interface {
	DeliverNotification(commentID uint) error
}

// Consumer 异步任务消费者
type Consumer struct {
	comments commentNotifier
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{comments: c.CommentService}
}

// Register 注册任务处理函数
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCommentNotify, c.handleCommentNotify)
}

func (c *Consumer) handleCommentNotify(ctx context.Context, task *asynq.Task) error {
	if task == nil {
		return nil
	}
	_, span := observability.StartSpan(ctx, "worker.comment_notify")
	defer span.End()

	payload, err := queue.ParseCommentNotifyPayload(task)
	if err != nil {
		logger.Warnw("worker_comment_notify_unmarshal_failed", "error", err)
		observability.RecordError(span, err)
		return err
	}
	span.SetAttributes(attribute.Int64("comment.id", int64(payload.CommentID)))
	if payload.CommentID == 0 {
		logger.Debugw("worker_comment_notify_skip_invalid_payload", "post_id", payload.PostID)
		return nil
	}
	if c.comments == nil {
		logger.Warnw("worker_comment_notify_skip_service_nil", "comment_id", payload.CommentID)
		return nil
	}
	if err := c.comments.DeliverNotification(payload.CommentID); err != nil {
		logger.Warnw("worker_comment_notify_failed",
			"comment_id", payload.CommentID,
			"post_id", payload.PostID,
			"error", err,
		)
		observability.RecordError(span, err)
		return err
	}
	return nil
}

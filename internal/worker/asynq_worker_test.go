package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/queue"

	"github.com/hibiken/asynq"
)

type fakeNotifier struct {
	delivered []uint
	err       error
}

func (f *fakeNotifier) DeliverNotification(commentID uint) error {
	f.delivered = append(f.delivered, commentID)
	return f.err
}

func TestHandleCommentNotifyDelivers(t *testing.T) {
	notifier := &fakeNotifier{}
	consumer := &Consumer{comments: notifier}
	task, err := queue.NewCommentNotifyTask(queue.CommentNotifyPayload{CommentID: 7, PostID: 3})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}

	if err := consumer.handleCommentNotify(context.Background(), task); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if len(notifier.delivered) != 1 || notifier.delivered[0] != 7 {
		t.Fatalf("unexpected deliveries: %v", notifier.delivered)
	}
}

func TestHandleCommentNotifySkipsInvalidPayload(t *testing.T) {
	notifier := &fakeNotifier{}
	consumer := &Consumer{comments: notifier}

	if err := consumer.handleCommentNotify(context.Background(), asynq.NewTask(queue.TaskCommentNotify, []byte(`{"post_id":3}`))); err != nil {
		t.Fatalf("zero comment id should be skipped, got %v", err)
	}
	if err := consumer.handleCommentNotify(context.Background(), asynq.NewTask(queue.TaskCommentNotify, []byte(`not-json`))); err == nil {
		t.Fatalf("malformed payload should fail")
	}
	if len(notifier.delivered) != 0 {
		t.Fatalf("nothing should be delivered: %v", notifier.delivered)
	}
}

func TestHandleCommentNotifyPropagatesErrorForRetry(t *testing.T) {
	consumer := &Consumer{comments: &fakeNotifier{err: errors.New("smtp down")}}
	task, _ := queue.NewCommentNotifyTask(queue.CommentNotifyPayload{CommentID: 1})
	if err := consumer.handleCommentNotify(context.Background(), task); err == nil {
		t.Fatalf("delivery error should be returned so asynq retries")
	}
}

func TestNewServiceRequiresEnabledQueue(t *testing.T) {
	if _, err := NewService(&config.QueueConfig{Enabled: false}, &Consumer{}); err == nil {
		t.Fatalf("disabled queue should not build a worker")
	}
	if _, err := NewService(&config.QueueConfig{Enabled: true}, nil); err == nil {
		t.Fatalf("nil consumer should be rejected")
	}
}

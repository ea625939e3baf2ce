package queue

import (
	"testing"

	"github.com/blogicum/internal/config"
)

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueCommentNotify(CommentNotifyPayload{CommentID: 1}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
}

func TestCommentNotifyTaskPayload(t *testing.T) {
	task, err := NewCommentNotifyTask(CommentNotifyPayload{CommentID: 3, PostID: 9})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if task.Type() != TaskCommentNotify {
		t.Fatalf("unexpected task type %s", task.Type())
	}
	payload, err := ParseCommentNotifyPayload(task)
	if err != nil || payload.CommentID != 3 || payload.PostID != 9 {
		t.Fatalf("unexpected payload %+v err=%v", payload, err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("unexpected addr %s", opt.Addr)
	}
	if cfg.Concurrency != 10 || cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("unexpected server config %+v", cfg)
	}
}

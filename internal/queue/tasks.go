package queue

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// TaskCommentNotify 新评论邮件通知任务
	TaskCommentNotify = "comment:notify"
)

// CommentNotifyPayload 新评论通知任务载荷
type CommentNotifyPayload struct {
	CommentID uint `json:"comment_id"`
	PostID    uint `json:"post_id"`
}

// NewCommentNotifyTask 创建新评论通知任务
func NewCommentNotifyTask(payload CommentNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCommentNotify, body, asynq.MaxRetry(5)), nil
}

// ParseCommentNotifyPayload 解析新评论通知任务载荷
func ParseCommentNotifyPayload(task *asynq.Task) (CommentNotifyPayload, error) {
	var payload CommentNotifyPayload
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}

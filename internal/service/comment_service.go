package service

import (
	"errors"
	"strings"

	"github.com/blogicum/internal/logger"
	"github.com/blogicum/internal/models"
	"github.com/blogicum/internal/queue"
	"github.com/blogicum/internal/repository"
)

// CommentService 评论业务服务
type CommentService struct {
	commentRepo  repository.CommentRepository
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
	queueClient  *queue.Client
	emailService *EmailService
}

// NewCommentService 创建评论服务
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	queueClient *queue.Client,
	emailService *EmailService,
) *CommentService {
	return &CommentService{
		commentRepo:  commentRepo,
		postRepo:     postRepo,
		userRepo:     userRepo,
		queueClient:  queueClient,
		emailService: emailService,
	}
}

// ListForPost 文章评论，按创建时间正序
func (s *CommentService) ListForPost(postID uint) ([]models.Comment, error) {
	return s.commentRepo.ListByPost(postID)
}

// Add 发表评论，文章不存在时返回 ErrNotFound 且不创建评论
func (s *CommentService) Add(postID, authorID uint, text string) (*models.Comment, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(text) == "" {
		return nil, NewValidationError("text", "required")
	}

	comment := &models.Comment{
		Text:     text,
		PostID:   post.ID,
		AuthorID: authorID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	if post.AuthorID != authorID && s.queueClient.Enabled() {
		payload := queue.CommentNotifyPayload{CommentID: comment.ID, PostID: post.ID}
		if err := s.queueClient.EnqueueCommentNotify(payload); err != nil {
			logger.Warnw("comment_notify_enqueue_failed", "comment_id", comment.ID, "post_id", post.ID, "error", err)
		}
	}
	return comment, nil
}

// GetForEdit 获取待编辑评论
func (s *CommentService) GetForEdit(postID, commentID, actorID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil || comment.PostID != postID {
		return nil, ErrNotFound
	}
	if !IsOwner(*comment, actorID) {
		return nil, ErrNotOwner
	}
	return comment, nil
}

// Update 编辑评论，仅作者可操作
func (s *CommentService) Update(postID, commentID, actorID uint, text string) (*models.Comment, error) {
	comment, err := s.GetForEdit(postID, commentID, actorID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, NewValidationError("text", "required")
	}
	comment.Text = text
	comment.Author = nil
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete 删除评论，仅作者可操作
func (s *CommentService) Delete(postID, commentID, actorID uint) error {
	if _, err := s.GetForEdit(postID, commentID, actorID); err != nil {
		return err
	}
	return s.commentRepo.Delete(commentID)
}

// ListAdmin 管理端评论列表
func (s *CommentService) ListAdmin(filter repository.CommentListFilter) ([]models.Comment, int64, error) {
	return s.commentRepo.ListAdmin(filter)
}

// AdminDelete 管理端删除评论
func (s *CommentService) AdminDelete(commentID uint) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrNotFound
	}
	return s.commentRepo.Delete(commentID)
}

// DeliverNotification 向文章作者发送新评论邮件，由队列消费者调用。
// 评论或文章已删除、作者无邮箱、邮件服务未启用时直接跳过。
func (s *CommentService) DeliverNotification(commentID uint) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		logger.Debugw("comment_notify_skip_comment_missing", "comment_id", commentID)
		return nil
	}
	post, err := s.postRepo.GetByID(comment.PostID)
	if err != nil {
		return err
	}
	if post == nil || post.Author == nil {
		logger.Debugw("comment_notify_skip_post_missing", "comment_id", commentID, "post_id", comment.PostID)
		return nil
	}
	receiver := strings.TrimSpace(post.Author.Email)
	if receiver == "" || post.AuthorID == comment.AuthorID {
		return nil
	}

	commenter := ""
	if comment.Author != nil {
		commenter = comment.Author.Username
	}
	err = s.emailService.SendCommentNotification(receiver, CommentNotificationInput{
		PostID:    post.ID,
		PostTitle: post.Title,
		Commenter: commenter,
		Text:      comment.Text,
	})
	if errors.Is(err, ErrEmailServiceDisabled) || errors.Is(err, ErrEmailRecipientRejected) {
		logger.Debugw("comment_notify_skip_email", "comment_id", commentID, "reason", err.Error())
		return nil
	}
	return err
}

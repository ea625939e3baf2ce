package public

import (
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileRequest 个人资料表单
type ProfileRequest struct {
	Username  string `json:"username" form:"username"`
	Email     string `json:"email" form:"email"`
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// GetMyProfile 获取本人可编辑资料
func (h *Handler) GetMyProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(uid)
	if err != nil {
		respondWithMappedError(c, err, accountErrorRules, response.CodeInternal, "error.fetch_failed")
		return
	}
	response.Success(c, user)
}

// UpdateMyProfile 编辑本人资料，成功后跳转首页
func (h *Handler) UpdateMyProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if _, err := h.UserAuthService.UpdateProfile(uid, service.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
	}); err != nil {
		respondWithMappedError(c, err, accountErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	redirect(c, postIndexPath())
}

// ChangeMyPassword 修改密码，旧 Token 随即失效
func (h *Handler) ChangeMyPassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.UserAuthService.ChangePassword(uid, req.OldPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, accountErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	requestLog(c).Infow("user_password_changed", "user_id", uid)
	response.Success(c, gin.H{"changed": true})
}

package admin

import "github.com/blogicum/internal/provider"

// Handler 后台管理接口处理器入口
// 说明：仅 is_staff 用户可达，具体接口再经 casbin 策略校验。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

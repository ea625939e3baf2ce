package public

import "github.com/blogicum/internal/provider"

// Handler 前台接口处理器入口
// 说明：游客与登录用户共用，需登录的接口由路由中间件保证 user_id 存在。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

package constants

// 登录日志状态常量
const (
	LoginLogStatusSuccess = "success"
	LoginLogStatusFailed  = "failed"
)

// 登录日志失败原因常量
const (
	LoginLogFailReasonBadRequest         = "bad_request"
	LoginLogFailReasonInvalidCredentials = "invalid_credentials"
	LoginLogFailReasonUserDisabled       = "user_disabled"
	LoginLogFailReasonInternalError      = "internal_error"
	LoginLogFailReasonCaptchaInvalid     = "captcha_invalid"
)

// 登录来源常量
const (
	LoginLogSourceWeb = "web"
)

// 验证码场景常量
const (
	CaptchaSceneRegister = "register"
	CaptchaSceneLogin    = "login"
)

// 上传场景常量
const (
	UploadScenePost   = "post"
	UploadSceneAvatar = "avatar"
)

// 权限审计动作常量
const (
	AuthzAuditActionGrantRole  = "grant_role"
	AuthzAuditActionRevokeRole = "revoke_role"
)

// 分页默认值
const (
	DefaultAdminPageSize = 20
	MaxAdminPageSize     = 100
)

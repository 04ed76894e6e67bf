package response

// 业务错误码
// 1xxxx 通用，11xxx 认证，12xxx 用户，13xxx 职位，14xxx 申请，15xxx 导出，50000 内部错误
const (
	CodeSuccess = 0

	CodeInvalidParams = 10001
	CodeUnauthorized  = 10002
	CodeForbidden     = 10003
	CodeRateLimited   = 10004
	CodeBodyTooLarge  = 10005

	CodeEmailExists        = 11001
	CodeInvalidCredentials = 11002
	CodeAccountDisabled    = 11003
	CodeRefreshInvalid     = 11004
	CodeOldPasswordWrong   = 11005

	CodeUserNotFound   = 12001
	CodeUserSelfDelete = 12002
	CodeUserSelfToggle = 12003

	CodeJobNotFound        = 13001
	CodeSalaryRangeInvalid = 13002
	CodeDeadlineInvalid    = 13003

	CodeApplicationNotFound  = 14001
	CodeJobClosed            = 14002
	CodeDuplicateApplication = 14003
	CodeStatusRevertPending  = 14004

	CodeExportFailed = 15001

	CodeInternalError = 50000
)

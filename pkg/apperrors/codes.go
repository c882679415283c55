package apperrors

// ErrorCode - стабильный машиночитаемый код ошибки для клиентского ветвления
type ErrorCode string

const (
	CodeValidationError      ErrorCode = "VALIDATION_ERROR"
	CodeConflict             ErrorCode = "CONFLICT"
	CodeUnauthorized         ErrorCode = "UNAUTHORIZED"
	CodeNotFound             ErrorCode = "NOT_FOUND"
	CodeUnsupportedMediaType ErrorCode = "UNSUPPORTED_MEDIA_TYPE"
	CodeQuotaExceeded        ErrorCode = "QUOTA_EXCEEDED"
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
)

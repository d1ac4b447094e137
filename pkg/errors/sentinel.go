package errors

import "errors"

// 内部哨兵错误，供各包在初始化和校验阶段使用。
var (
	ErrDatabaseConnectionNil        = errors.New("database connection is nil")
	ErrTokenGeneratorNotInitialized = errors.New("token generator not initialized")
	ErrUnexpectedSigningMethod      = errors.New("unexpected signing method")
	ErrInvalidToken                 = errors.New("invalid token")
	ErrInvalidTokenClaims           = errors.New("invalid token claims")
	ErrInvalidTokenType             = errors.New("invalid token type")
	ErrUserIDNotFound               = errors.New("user id not found in token claims")
)

// SkipMessageError 表示消息应被确认但无需处理（幂等跳过）。
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return "skip message: " + e.Reason
}

// IsSkipMessage 判断错误是否为幂等跳过。
func IsSkipMessage(err error) bool {
	var skip *SkipMessageError
	return errors.As(err, &skip)
}

package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest      ErrorCode = "BAD_REQUEST"
	ErrCodeConflict        ErrorCode = "CONFLICT"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrCodeDatabaseError   ErrorCode = "DATABASE_ERROR"
	ErrCodeBanned          ErrorCode = "BANNED"
	ErrCodeSelfReport      ErrorCode = "SELF_REPORT"
	ErrCodeDuplicateReport ErrorCode = "DUPLICATE_REPORT"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по коду, чтобы errors.Is(err, ErrBanned) работал
// и для обёрнутых экземпляров с другим сообщением.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// Validation создаёт ошибку валидации с указанным сообщением.
func Validation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

// NotFound создаёт ошибку отсутствия сущности.
func NotFound(message string) *AppError {
	return New(ErrCodeNotFound, message)
}

// Permission создаёт ошибку недостатка прав.
func Permission(message string) *AppError {
	return New(ErrCodeForbidden, message)
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden, ErrCodeBanned:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation, ErrCodeSelfReport:
		return http.StatusBadRequest
	case ErrCodeConflict, ErrCodeDuplicateReport:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf возвращает код ошибки или ErrCodeInternal для неизвестных ошибок.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

func IsForbidden(err error) bool {
	return CodeOf(err) == ErrCodeForbidden
}

func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}

func IsBanned(err error) bool {
	return CodeOf(err) == ErrCodeBanned
}

func IsSelfReport(err error) bool {
	return CodeOf(err) == ErrCodeSelfReport
}

func IsDuplicateReport(err error) bool {
	return CodeOf(err) == ErrCodeDuplicateReport
}

var (
	ErrListingNotFound = New(ErrCodeNotFound, "объявление не найдено")
	ErrReportNotFound  = New(ErrCodeNotFound, "жалоба не найдена")
	ErrUserNotFound    = New(ErrCodeNotFound, "пользователь не найден")
	ErrBadgeNotFound   = New(ErrCodeNotFound, "бейдж не найден")
	ErrUnauthorized    = New(ErrCodeUnauthorized, "требуется авторизация")
	ErrForbidden       = New(ErrCodeForbidden, "недостаточно прав")
	ErrBanned          = New(ErrCodeBanned, "вы заблокированы и не можете выполнить это действие")
	ErrSelfReport      = New(ErrCodeSelfReport, "нельзя пожаловаться на самого себя или своё объявление")
	ErrDuplicateReport = New(ErrCodeDuplicateReport, "вы уже отправляли жалобу на этот объект")
)

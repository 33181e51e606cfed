package v1

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/vibe-gaming/gatekeeper/internal/service"
	"github.com/vibe-gaming/gatekeeper/pkg/logger"
	vcode "github.com/vibe-gaming/gatekeeper/pkg/validator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type messageResponse struct {
	Message string `json:"message"`
} // @name MessageResponse

func errorResponse(c *gin.Context, status int, code ErrorCode) {
	c.AbortWithStatusJSON(status, getErrorStruct(code))
}

func validationErrorResponse(c *gin.Context, err error) {
	response := ValidationErrorStruct{
		ErrorCode:    ValidationErrorCode,
		ErrorMessage: ValidationErrorMessage,
	}

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		out := make([]ValidationError, len(verr.Fields))
		for i, ferr := range verr.Fields {
			out[i] = ValidationError{ferr.Field(), msgForTag(ferr.Tag(), ferr.Param())}
		}
		response.Errors = out
	}

	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, response)
}

// serviceErrorResponse maps service errors onto the API error codes.
func serviceErrorResponse(c *gin.Context, err error) {
	var rateLimited *service.RateLimitedError

	switch {
	case errors.Is(err, service.ErrValidation):
		validationErrorResponse(c, err)
	case errors.As(err, &rateLimited):
		seconds := int(math.Ceil(rateLimited.RetryAfter.Seconds()))
		if seconds < 1 {
			seconds = 1
		}
		c.Header("Retry-After", strconv.Itoa(seconds))
		errorResponse(c, http.StatusTooManyRequests, TooManyAttemptsCode)
	case errors.Is(err, service.ErrDuplicateAccount):
		errorResponse(c, http.StatusUnprocessableEntity, UserAlreadyExistsCode)
	case errors.Is(err, service.ErrInvalidVerification):
		errorResponse(c, http.StatusUnprocessableEntity, InvalidVerificationCode)
	case errors.Is(err, service.ErrUnauthorized):
		errorResponse(c, http.StatusUnauthorized, InvalidCredentialsCode)
	case errors.Is(err, service.ErrAccountNotVerified):
		errorResponse(c, http.StatusForbidden, UserNotVerifiedCode)
	case errors.Is(err, service.ErrAccountNotFound):
		errorResponse(c, http.StatusNotFound, UserNotFoundCode)
	default:
		logger.Error("request failed", zap.Error(err), zap.String("path", c.FullPath()))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
	}
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "Это поле обязательное к заполнению"
	case "email":
		return "Неверный формат почты"
	case "number":
		return "Поле должно иметь числовой формат"
	case "min":
		return fmt.Sprintf("Минимальное количество символов в поле - %v", value)
	case "max":
		return fmt.Sprintf("Максимальное количество символов в поле - %v", value)
	case vcode.MaxBytesTag:
		return fmt.Sprintf("Максимальная длина поля в байтах - %v", value)
	case vcode.VerificationCodeTag:
		return "Код должен состоять из 6 цифр и не начинаться с 0"
	}
	return tag
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskease/internal/adapter/http/middleware"
	"taskease/internal/adapter/http/validation"
	"taskease/internal/core/domain"
	"taskease/pkg/apierrors"
)

type errorMapping struct {
	target error
	status int
	msgKey string
}

var knownErrors = []errorMapping{
	{domain.ErrTaskNotFound, http.StatusNotFound, apierrors.MsgTaskNotFound},
	{domain.ErrAssigneeNotRegistered, http.StatusNotFound, apierrors.MsgAssigneeNotFound},
	{domain.ErrUserNotFound, http.StatusNotFound, apierrors.MsgUserNotFound},
	{domain.ErrUserDetailNotFound, http.StatusNotFound, apierrors.MsgUserDetailNotFound},
	{domain.ErrUserAlreadyExists, http.StatusConflict, apierrors.MsgUserAlreadyExists},
	{domain.ErrInvalidIdentityToken, http.StatusUnauthorized, apierrors.MsgInvalidIdentityToken},
	{domain.ErrInvalidSessionToken, http.StatusUnauthorized, apierrors.MsgUnauthorized},
	{domain.ErrInvalidFrequency, http.StatusBadRequest, apierrors.MsgInvalidFrequency},
	{domain.ErrInvalidRole, http.StatusBadRequest, apierrors.MsgInvalidDetailPayload},
	{domain.ErrInvalidUpdateType, http.StatusBadRequest, apierrors.MsgInvalidUpdatePayload},
	{domain.ErrEmptyMessage, http.StatusBadRequest, apierrors.MsgEmptyMessage},
	{validation.ErrInvalidTaskPayload, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload},
	{validation.ErrInvalidUpdatePayload, http.StatusBadRequest, apierrors.MsgInvalidUpdatePayload},
	{validation.ErrInvalidDetailPayload, http.StatusBadRequest, apierrors.MsgInvalidDetailPayload},
	{validation.ErrInvalidChatQuery, http.StatusBadRequest, apierrors.MsgInvalidChatQuery},
}

// respondError writes the translated error matching err. Anything unknown is
// logged and answered with a 500 carrying fallbackKey.
func respondError(c *gin.Context, err error, fallbackKey, logMsg string, fields ...zap.Field) {
	lang := middleware.GetLang(c)

	for _, known := range knownErrors {
		if errors.Is(err, known.target) {
			c.JSON(known.status, apierrors.CreateError(known.status, known.msgKey, lang))
			return
		}
	}

	fields = append(fields, zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
	zap.L().Error(logMsg, fields...)
	c.JSON(
		http.StatusInternalServerError,
		apierrors.CreateError(http.StatusInternalServerError, fallbackKey, lang),
	)
}

func badRequest(c *gin.Context, msgKey string) {
	c.JSON(
		http.StatusBadRequest,
		apierrors.CreateError(http.StatusBadRequest, msgKey, middleware.GetLang(c)),
	)
}

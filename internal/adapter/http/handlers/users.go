package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskease/internal/adapter/http/dto"
	"taskease/internal/adapter/http/mapper"
	"taskease/internal/adapter/http/middleware"
	"taskease/internal/adapter/http/validation"
	"taskease/internal/core/ports"
	"taskease/pkg/apierrors"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) ListEmails(c *gin.Context) {
	emails, err := h.userService.ListEmails(c.Request.Context())
	if err != nil {
		respondError(c, err, apierrors.MsgFailListUsers, "failed to list user emails")
		return
	}
	if emails == nil {
		emails = []string{}
	}

	c.JSON(http.StatusOK, dto.EmailsResponse{Emails: emails})
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	email := c.Param("email")

	user, err := h.userService.GetProfile(c.Request.Context(), email)
	if err != nil {
		respondError(c, err, apierrors.MsgFailGetUser, "failed to get user profile", zap.String("email", email))
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{Success: true, User: mapper.ToUserItem(user)})
}

func (h *UserHandler) GetDetail(c *gin.Context) {
	email := middleware.GetEmail(c)

	user, detail, err := h.userService.GetDetail(c.Request.Context(), email)
	if err != nil {
		respondError(c, err, apierrors.MsgFailGetUser, "failed to get user detail", zap.String("email", email))
		return
	}

	item := mapper.ToUserItem(user)
	c.JSON(http.StatusOK, dto.UserDetailResponse{
		Success:    true,
		Message:    "User details fetched successfully",
		User:       &item,
		UserDetail: mapper.ToUserDetailItem(detail),
	})
}

func (h *UserHandler) SaveDetail(c *gin.Context) {
	var req dto.SaveUserDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidDetailPayload)
		return
	}

	phone, role, err := validation.BuildUserDetail(req)
	if err != nil {
		respondError(c, err, apierrors.MsgInvalidDetailPayload, "failed to validate user detail")
		return
	}

	email := middleware.GetEmail(c)
	detail, err := h.userService.SaveDetail(c.Request.Context(), email, phone, role)
	if err != nil {
		respondError(c, err, apierrors.MsgFailSaveUserDetail, "failed to save user detail", zap.String("email", email))
		return
	}

	c.JSON(http.StatusOK, dto.UserDetailResponse{
		Success:    true,
		Message:    "User details saved successfully",
		UserDetail: mapper.ToUserDetailItem(detail),
	})
}

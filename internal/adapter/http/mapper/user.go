package mapper

import (
	"taskease/internal/adapter/http/dto"
	"taskease/internal/core/domain"
)

func ToUserItem(user domain.User) dto.UserItem {
	return dto.UserItem{
		ID:              user.ID,
		Email:           user.Email,
		Username:        user.Username,
		TasksAssigned:   user.Counters.TasksAssigned,
		TasksCompleted:  user.Counters.TasksCompleted,
		TasksInProgress: user.Counters.TasksInProgress,
		TasksNotStarted: user.Counters.TasksNotStarted,
		CreatedAt:       formatTime(user.CreatedAt),
	}
}

func ToUserDetailItem(detail domain.UserDetail) dto.UserDetailItem {
	return dto.UserDetailItem{
		UserID:      detail.UserID,
		PhoneNumber: detail.PhoneNumber,
		Role:        string(detail.Role),
		CreatedAt:   formatTime(detail.CreatedAt),
		UpdatedAt:   formatTime(detail.UpdatedAt),
	}
}

func ToChatMessageItems(messages []domain.ChatMessage) []dto.ChatMessageItem {
	items := make([]dto.ChatMessageItem, 0, len(messages))
	for _, msg := range messages {
		items = append(items, ToChatMessageItem(msg))
	}
	return items
}

func ToChatMessageItem(msg domain.ChatMessage) dto.ChatMessageItem {
	return dto.ChatMessageItem{
		ID:        msg.ID,
		UserID:    msg.UserID,
		Username:  msg.Username,
		Message:   msg.Message,
		IsSystem:  msg.IsSystem,
		Timestamp: msg.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

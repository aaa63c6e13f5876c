package validation

import (
	"errors"
	"strings"
	"time"

	"taskease/internal/adapter/http/dto"
	"taskease/internal/core/domain"
)

var (
	ErrInvalidDetailPayload = errors.New("invalid user detail payload")
	ErrInvalidChatQuery     = errors.New("invalid chat query")
)

func BuildUserDetail(req dto.SaveUserDetailRequest) (*string, domain.Role, error) {
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, "", err
	}

	var phone *string
	if req.PhoneNumber != nil {
		value := strings.TrimSpace(*req.PhoneNumber)
		if value != "" {
			phone = &value
		}
	}

	return phone, role, nil
}

// ParseChatQuery returns the zero time when no cursor is given.
func ParseChatQuery(query dto.ChatHistoryQuery) (time.Time, int, error) {
	if query.Limit < 0 {
		return time.Time{}, 0, ErrInvalidChatQuery
	}
	if strings.TrimSpace(query.Before) == "" {
		return time.Time{}, query.Limit, nil
	}

	before, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(query.Before))
	if err != nil {
		return time.Time{}, 0, ErrInvalidChatQuery
	}
	return before, query.Limit, nil
}

package ports

import (
	"context"

	"taskease/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	ListEmails(ctx context.Context) ([]string, error)
	// AdjustCounters applies delta atomically, flooring each counter at zero.
	AdjustCounters(ctx context.Context, email string, delta domain.CounterDelta) error
}

type UserDetailRepository interface {
	Get(ctx context.Context, userID string) (domain.UserDetail, error)
	Upsert(ctx context.Context, detail domain.UserDetail) (domain.UserDetail, error)
}

type UserService interface {
	ListEmails(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, email string) (domain.User, error)
	GetDetail(ctx context.Context, email string) (domain.User, domain.UserDetail, error)
	SaveDetail(ctx context.Context, email string, phoneNumber *string, role domain.Role) (domain.UserDetail, error)
}

package service

import (
	"context"
	"errors"
	"time"

	"taskease/internal/core/domain"
	"taskease/internal/core/ports"
)

type UserService struct {
	userRepository   ports.UserRepository
	detailRepository ports.UserDetailRepository
	now              Clock
}

func NewUserService(userRepository ports.UserRepository, detailRepository ports.UserDetailRepository) *UserService {
	return &UserService{
		userRepository:   userRepository,
		detailRepository: detailRepository,
		now:              time.Now,
	}
}

func (s *UserService) WithClock(now Clock) *UserService {
	s.now = now
	return s
}

func (s *UserService) ListEmails(ctx context.Context) ([]string, error) {
	return s.userRepository.ListEmails(ctx)
}

func (s *UserService) GetProfile(ctx context.Context, email string) (domain.User, error) {
	return s.userRepository.GetByEmail(ctx, domain.NormalizeEmail(email))
}

func (s *UserService) GetDetail(ctx context.Context, email string) (domain.User, domain.UserDetail, error) {
	user, err := s.userRepository.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return domain.User{}, domain.UserDetail{}, err
	}

	detail, err := s.detailRepository.Get(ctx, user.ID)
	if err != nil {
		return user, domain.UserDetail{}, err
	}
	return user, detail, nil
}

func (s *UserService) SaveDetail(ctx context.Context, email string, phoneNumber *string, role domain.Role) (domain.UserDetail, error) {
	user, err := s.userRepository.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return domain.UserDetail{}, err
	}

	if role == "" {
		role = domain.RoleUser
	}
	now := s.now()

	detail := domain.UserDetail{
		UserID:      user.ID,
		PhoneNumber: phoneNumber,
		Role:        role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if existing, err := s.detailRepository.Get(ctx, user.ID); err == nil {
		detail.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, domain.ErrUserDetailNotFound) {
		return domain.UserDetail{}, err
	}

	return s.detailRepository.Upsert(ctx, detail)
}

var _ ports.UserService = (*UserService)(nil)

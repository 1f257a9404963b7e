package service

import (
	"errors"
	"fmt"

	"socialite/internal/model"
	"socialite/internal/repository"
)

// UserService is the identity directory: lookups by id, phone and
// keyword, plus profile updates. The relationship engine consumes it,
// never the other way around.
type UserService interface {
	GetByID(id string) (*model.User, error)
	SearchByPhone(phone string) (*model.User, error)
	SearchUsers(keyword string, limit, offset int) ([]model.User, error)
	UpdateProfile(userID string, req UpdateProfileRequest) (*model.User, error)
}

type UpdateProfileRequest struct {
	Username  *string `json:"username,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetByID(id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// SearchByPhone finds a user by their contact number, used to start a
// friend request from the add-friend screen.
func (s *userService) SearchByPhone(phone string) (*model.User, error) {
	user, err := s.userRepo.FindByPhone(phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to search user: %w", err)
	}
	return user, nil
}

func (s *userService) SearchUsers(keyword string, limit, offset int) ([]model.User, error) {
	if keyword == "" {
		return []model.User{}, nil
	}
	return s.userRepo.SearchUsers(keyword, limit, offset)
}

func (s *userService) UpdateProfile(userID string, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if req.Username != nil && *req.Username != "" && *req.Username != user.Username {
		if existing, err := s.userRepo.FindByUsername(*req.Username); err == nil && existing.ID != userID {
			return nil, conflict("username already taken")
		}
		user.Username = *req.Username
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

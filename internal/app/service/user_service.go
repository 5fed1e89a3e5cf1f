package service

import (
	"errors"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/app/repository"
	apperrors "github.com/ecofinds/ecofinds-backend/internal/errors"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
	"gorm.io/gorm"
)

type AccountUpdate struct {
	Username *string
	Email    *string
}

type ProfileUpdate struct {
	Name       *string
	Address    *string
	City       *string
	PostalCode *string
	Country    *string
}

type UserService interface {
	GetAccount(userID uint) (*model.User, error)
	UpdateAccount(userID uint, update AccountUpdate) (*model.User, error)
	UpsertProfile(userID uint, update ProfileUpdate) (*model.UserProfile, error)
	DeleteAccount(userID uint) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetAccount(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByIDWithProfile(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperrors.Classify(err, "fetch account")
	}
	return user, nil
}

func (s *userService) UpdateAccount(userID uint, update AccountUpdate) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperrors.Classify(err, "update account")
	}

	if update.Email != nil && *update.Email != user.Email {
		if existing, err := s.userRepo.FindByEmail(*update.Email); err == nil && existing.ID != userID {
			return nil, ErrEmailAlreadyExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Classify(err, "update account")
		}
		user.Email = *update.Email
	}

	if update.Username != nil && *update.Username != user.Username {
		if existing, err := s.userRepo.FindByUsername(*update.Username); err == nil && existing.ID != userID {
			return nil, ErrUsernameAlreadyExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Classify(err, "update account")
		}
		user.Username = *update.Username
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.Classify(err, "update account")
	}

	logger.Info("Account updated", map[string]interface{}{
		"user_id": userID,
	})

	return user, nil
}

func (s *userService) UpsertProfile(userID uint, update ProfileUpdate) (*model.UserProfile, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperrors.Classify(err, "upsert profile")
	}

	profile, err := s.userRepo.FindProfileByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Classify(err, "upsert profile")
		}
		profile = &model.UserProfile{UserID: userID}
	}

	if update.Name != nil {
		profile.Name = *update.Name
	}
	if update.Address != nil {
		profile.Address = *update.Address
	}
	if update.City != nil {
		profile.City = *update.City
	}
	if update.PostalCode != nil {
		profile.PostalCode = *update.PostalCode
	}
	if update.Country != nil {
		profile.Country = *update.Country
	}

	if err := s.userRepo.UpsertProfile(profile); err != nil {
		return nil, apperrors.Classify(err, "upsert profile")
	}

	logger.Info("Profile saved", map[string]interface{}{
		"user_id": userID,
	})

	return profile, nil
}

func (s *userService) DeleteAccount(userID uint) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return apperrors.Classify(err, "delete account")
	}

	if err := s.userRepo.Delete(userID); err != nil {
		return apperrors.Classify(err, "delete account")
	}

	logger.Info("Account deleted", map[string]interface{}{
		"user_id": userID,
	})

	return nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"journal-be/internal/dto"
	"journal-be/internal/repository/specification"
	"journal-be/internal/repository/unitofwork"
	"journal-be/pkg/events"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	DeleteAccount(ctx context.Context, userId uuid.UUID) error
}

type userService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) IUserService {
	return &userService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	if userId == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	return &dto.UserProfileResponse{
		Id:        user.Id,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	if userId == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	user.FullName = req.FullName
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	return &dto.UserProfileResponse{
		Id:        user.Id,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *userService) DeleteAccount(ctx context.Context, userId uuid.UUID) error {
	if userId == uuid.Nil {
		return ErrNotAuthenticated
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserRepository().Delete(ctx, userId); err != nil {
		return err
	}

	if s.publisherService != nil {
		evt := events.BaseEvent{
			Type:       events.TypeUserDeleted,
			Data:       map[string]interface{}{"user_id": userId},
			OccurredAt: time.Now(),
		}
		payload, err := json.Marshal(evt)
		if err == nil {
			if err := s.publisherService.Publish(ctx, payload); err != nil {
				fmt.Printf("[WARN] Failed to publish %s event: %v\n", events.TypeUserDeleted, err)
			}
		}
	}

	return nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"journal-be/internal/dto"
	"journal-be/internal/entity"
	"journal-be/internal/repository/specification"
	"journal-be/internal/repository/unitofwork"
	"journal-be/pkg/events"

	"github.com/google/uuid"
)

var (
	ErrNotAuthenticated     = errors.New("User not authenticated")
	ErrTitleContentRequired = errors.New("Title and content are required")
	ErrNothingToUpdate      = errors.New("Nothing to update")
	ErrEntryNotFound        = errors.New("entry not found")
)

type IEntryService interface {
	List(ctx context.Context, userId uuid.UUID) ([]dto.EntryResponse, error)
	Search(ctx context.Context, userId uuid.UUID, query, tag string) ([]dto.EntryResponse, error)
	Show(ctx context.Context, userId, entryId uuid.UUID) (*dto.EntryResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateEntryRequest) (*dto.EntryResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateEntryRequest) (*dto.EntryResponse, error)
	Delete(ctx context.Context, userId, entryId uuid.UUID) (*dto.DeleteEntryResponse, error)
}

type entryService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewEntryService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) IEntryService {
	return &entryService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *entryService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisherService == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}

func toEntryResponse(e *entity.Entry) *dto.EntryResponse {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return &dto.EntryResponse{
		Id:        e.Id,
		Title:     e.Title,
		Content:   e.Content,
		Tags:      tags,
		UserId:    e.UserId,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toEntryResponses(entries []*entity.Entry) []dto.EntryResponse {
	responses := make([]dto.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, *toEntryResponse(e))
	}
	return responses
}

func (s *entryService) List(ctx context.Context, userId uuid.UUID) ([]dto.EntryResponse, error) {
	if userId == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.EntryRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	return toEntryResponses(entries), nil
}

func (s *entryService) Search(ctx context.Context, userId uuid.UUID, query, tag string) ([]dto.EntryResponse, error) {
	if userId == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
	}
	if query != "" {
		specs = append(specs, specification.TitleOrContentLike{Query: query})
	}
	if tag != "" {
		specs = append(specs, specification.HasTag{Tag: tag})
	}
	specs = append(specs, specification.OrderBy{Field: "created_at", Desc: true})

	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.EntryRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	return toEntryResponses(entries), nil
}

func (s *entryService) Show(ctx context.Context, userId, entryId uuid.UUID) (*dto.EntryResponse, error) {
	if userId == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	entry, err := uow.EntryRepository().FindOne(ctx,
		specification.ByID{ID: entryId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		// Absent rows are a null result, not a failure.
		return nil, nil
	}

	return toEntryResponse(entry), nil
}

func (s *entryService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	if userId == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, ErrTitleContentRequired
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	entry := &entity.Entry{
		Id:        uuid.New(),
		Title:     title,
		Content:   content,
		Tags:      tags,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.EntryRepository().Create(ctx, entry); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeEntryCreated, map[string]interface{}{
		"entry_id": entry.Id,
		"user_id":  userId,
	})

	return toEntryResponse(entry), nil
}

func (s *entryService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateEntryRequest) (*dto.EntryResponse, error) {
	if userId == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	if req.Title == nil && req.Content == nil && req.Tags == nil {
		return nil, ErrNothingToUpdate
	}

	var title, content string
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrTitleContentRequired
		}
	}
	if req.Content != nil {
		content = strings.TrimSpace(*req.Content)
		if content == "" {
			return nil, ErrTitleContentRequired
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	entry, err := uow.EntryRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}

	if req.Title != nil {
		entry.Title = title
	}
	if req.Content != nil {
		entry.Content = content
	}
	if req.Tags != nil {
		tags := *req.Tags
		if tags == nil {
			tags = []string{}
		}
		entry.Tags = tags
	}

	now := time.Now()
	entry.UpdatedAt = &now

	if err := uow.EntryRepository().Update(ctx, entry); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeEntryUpdated, map[string]interface{}{
		"entry_id": entry.Id,
		"user_id":  userId,
	})

	return toEntryResponse(entry), nil
}

func (s *entryService) Delete(ctx context.Context, userId, entryId uuid.UUID) (*dto.DeleteEntryResponse, error) {
	if userId == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.EntryRepository().Delete(ctx,
		specification.ByID{ID: entryId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrEntryNotFound
	}

	s.publishEvent(ctx, events.TypeEntryDeleted, map[string]interface{}{
		"entry_id": entryId,
		"user_id":  userId,
	})

	return &dto.DeleteEntryResponse{Id: entryId}, nil
}

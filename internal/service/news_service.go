package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nurpe/fleetadmin/internal/model"
	"github.com/nurpe/fleetadmin/internal/repository"
)

type NewsService struct {
	news NewsStore
}

func NewNewsService(news NewsStore) *NewsService {
	return &NewsService{news: news}
}

func (s *NewsService) CreateNews(ctx context.Context, heading, content string) (*model.NewsItem, error) {
	if strings.TrimSpace(heading) == "" || strings.TrimSpace(content) == "" {
		return nil, ErrInvalidInput
	}
	item, err := s.news.Create(ctx, heading, content)
	if err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}
	return item, nil
}

func (s *NewsService) ListNews(ctx context.Context) ([]model.NewsItem, error) {
	items, err := s.news.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	return items, nil
}

func (s *NewsService) GetNews(ctx context.Context, id uuid.UUID) (*model.NewsItem, error) {
	item, err := s.news.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get news: %w", err)
	}
	return item, nil
}

func (s *NewsService) UpdateNews(ctx context.Context, id uuid.UUID, update model.NewsUpdate) error {
	if update.Heading != nil && strings.TrimSpace(*update.Heading) == "" {
		return ErrInvalidInput
	}
	if update.Content != nil && strings.TrimSpace(*update.Content) == "" {
		return ErrInvalidInput
	}
	if err := s.news.Update(ctx, id, update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update news: %w", err)
	}
	return nil
}

func (s *NewsService) DeleteNews(ctx context.Context, id uuid.UUID) error {
	if err := s.news.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete news: %w", err)
	}
	return nil
}

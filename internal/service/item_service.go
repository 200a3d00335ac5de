package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"todolist/internal/cache"
	dom "todolist/internal/domain"
	"todolist/internal/repo"

	"golang.org/x/sync/singleflight"
)

type ItemService struct {
	repo  repo.ItemRepo
	cache *cache.ItemCache
	sf    singleflight.Group
}

// NewItemService creates an ItemService. If c is nil, caching is disabled.
func NewItemService(r repo.ItemRepo, c *cache.ItemCache) *ItemService {
	return &ItemService{repo: r, cache: c}
}

// List returns the owner's items.
func (s *ItemService) List(ctx context.Context, ownerID int64) ([]dom.Item, error) {
	if s.cache == nil {
		return s.repo.ListByOwner(ctx, ownerID)
	}
	key := "list:" + strconv.FormatInt(ownerID, 10)
	// Shared by every waiter on key, so it must outlive the first caller.
	fillCtx := context.WithoutCancel(ctx)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, err := s.cache.GetList(fillCtx, ownerID); err == nil && list != nil {
			return list, nil
		}
		gen, genErr := s.cache.Generation(fillCtx, ownerID)
		list, err := s.repo.ListByOwner(fillCtx, ownerID)
		if err != nil {
			return nil, err
		}
		if genErr == nil {
			_ = s.cache.SetList(fillCtx, ownerID, list, gen)
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Item), nil
}

func (s *ItemService) Create(ctx context.Context, ownerID int64, title, due, desc string) (dom.Item, error) {
	it, err := s.repo.Create(ctx, dom.Item{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(desc),
		Due:         strings.TrimSpace(due),
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return dom.Item{}, ErrTitleTaken
		}
		return dom.Item{}, fmt.Errorf("create item: %w", err)
	}
	s.invalidateCache(ctx, ownerID)
	return it, nil
}

// GetOwned returns the item only if ownerID owns it.
func (s *ItemService) GetOwned(ctx context.Context, ownerID, id int64) (dom.Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.Item{}, ErrNotFound
		}
		return dom.Item{}, fmt.Errorf("get item %d: %w", id, err)
	}
	if !it.OwnedBy(ownerID) {
		return dom.Item{}, ErrForbidden
	}
	return it, nil
}

// Delete removes the item after re-checking ownership.
func (s *ItemService) Delete(ctx context.Context, ownerID, id int64) error {
	if _, err := s.GetOwned(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	s.invalidateCache(ctx, ownerID)
	return nil
}

func (s *ItemService) invalidateCache(ctx context.Context, ownerID int64) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, ownerID)
	}
}

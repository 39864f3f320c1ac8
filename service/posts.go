package service

import (
	"context"

	"github.com/c360/memberhub/errors"
	"github.com/c360/memberhub/store"
)

// CreatePost validates the referenced author and stores a new post
func (s *Service) CreatePost(ctx context.Context, input CreatePostInput) (store.Post, error) {
	if input.Title == "" || input.Content == "" || input.UserID == "" {
		return store.Post{}, errors.WrapInvalid(errors.ErrInvalidInput,
			"Service", "CreatePost", "title, content and userId are required")
	}

	_, found, err := s.store.Users.FindByID(ctx, input.UserID)
	if err != nil {
		return store.Post{}, err
	}
	if !found {
		return store.Post{}, errors.WrapInvalid(errors.ErrNotFound,
			"Service", "CreatePost", "author lookup")
	}

	return s.store.Posts.Create(ctx, store.Post{
		Title:   input.Title,
		Content: input.Content,
		UserID:  input.UserID,
	})
}

// UpdatePost applies a partial patch to an existing post
func (s *Service) UpdatePost(ctx context.Context, id string, input UpdatePostInput) (store.Post, error) {
	return s.store.Posts.Change(ctx, id, func(p store.Post) store.Post {
		if input.Title != nil {
			p.Title = *input.Title
		}
		if input.Content != nil {
			p.Content = *input.Content
		}
		return p
	})
}

// DeletePost removes a post
func (s *Service) DeletePost(ctx context.Context, id string) (store.Post, error) {
	return s.store.Posts.Delete(ctx, id)
}

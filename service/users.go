package service

import (
	"context"
	"slices"

	"github.com/c360/memberhub/errors"
	"github.com/c360/memberhub/store"
)

// CreateUser validates and stores a new user
func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (store.User, error) {
	if input.FirstName == "" || input.LastName == "" || input.Email == "" {
		return store.User{}, errors.WrapInvalid(errors.ErrInvalidInput,
			"Service", "CreateUser", "firstName, lastName and email are required")
	}

	return s.store.Users.Create(ctx, store.User{
		FirstName:           input.FirstName,
		LastName:            input.LastName,
		Email:               input.Email,
		SubscribedToUserIDs: []string{},
	})
}

// UpdateUser applies a partial patch to an existing user. Only non-nil
// fields change.
func (s *Service) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (store.User, error) {
	return s.store.Users.Change(ctx, id, func(u store.User) store.User {
		if input.FirstName != nil {
			u.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			u.LastName = *input.LastName
		}
		if input.Email != nil {
			u.Email = *input.Email
		}
		return u
	})
}

// DeleteUser removes a user and cascades: the user's posts, the user's
// profile, and the user's id in every other user's subscription list. Steps
// run sequentially in that order; the store offers no transaction primitive,
// so a failure partway leaves the prior steps committed.
func (s *Service) DeleteUser(ctx context.Context, id string) (store.User, error) {
	_, found, err := s.store.Users.FindByID(ctx, id)
	if err != nil {
		return store.User{}, err
	}
	if !found {
		return store.User{}, errors.WrapInvalid(errors.ErrNotFound,
			"Service", "DeleteUser", "user lookup")
	}

	posts, err := s.store.Posts.FindMany(ctx, store.Filter{Key: "userId", Equals: id})
	if err != nil {
		return store.User{}, err
	}
	for _, post := range posts {
		if _, err := s.store.Posts.Delete(ctx, post.ID); err != nil {
			return store.User{}, errors.Wrap(err, "Service", "DeleteUser", "post cascade")
		}
	}

	profile, found, err := s.store.Profiles.FindOne(ctx, store.Filter{Key: "userId", Equals: id})
	if err != nil {
		return store.User{}, err
	}
	if found {
		if _, err := s.store.Profiles.Delete(ctx, profile.ID); err != nil {
			return store.User{}, errors.Wrap(err, "Service", "DeleteUser", "profile cascade")
		}
	}

	followers, err := s.store.Users.FindMany(ctx, store.Filter{Key: "subscribedToUserIds", InArray: id})
	if err != nil {
		return store.User{}, err
	}
	for _, follower := range followers {
		_, err := s.store.Users.Change(ctx, follower.ID, func(u store.User) store.User {
			u.SubscribedToUserIDs = slices.DeleteFunc(u.SubscribedToUserIDs,
				func(s string) bool { return s == id })
			return u
		})
		if err != nil {
			return store.User{}, errors.Wrap(err, "Service", "DeleteUser", "subscription cascade")
		}
	}

	deleted, err := s.store.Users.Delete(ctx, id)
	if err != nil {
		return store.User{}, err
	}

	s.logger.Info("user deleted",
		"user_id", id,
		"cascaded_posts", len(posts),
		"cascaded_profile", found,
		"stripped_followers", len(followers))

	return deleted, nil
}

// SubscribeTo adds authorID to the subscription list of userID.
// Subscribing to yourself or subscribing twice is a conflict.
func (s *Service) SubscribeTo(ctx context.Context, userID, authorID string) (store.User, error) {
	if userID == authorID {
		return store.User{}, errors.WrapInvalid(errors.ErrConflict,
			"Service", "SubscribeTo", "self subscription")
	}

	user, found, err := s.store.Users.FindByID(ctx, userID)
	if err != nil {
		return store.User{}, err
	}
	if !found {
		return store.User{}, errors.WrapInvalid(errors.ErrNotFound,
			"Service", "SubscribeTo", "subscriber lookup")
	}

	_, found, err = s.store.Users.FindByID(ctx, authorID)
	if err != nil {
		return store.User{}, err
	}
	if !found {
		return store.User{}, errors.WrapInvalid(errors.ErrNotFound,
			"Service", "SubscribeTo", "author lookup")
	}

	if slices.Contains(user.SubscribedToUserIDs, authorID) {
		return store.User{}, errors.WrapInvalid(errors.ErrConflict,
			"Service", "SubscribeTo", "already subscribed")
	}

	return s.store.Users.Change(ctx, userID, func(u store.User) store.User {
		u.SubscribedToUserIDs = append(u.SubscribedToUserIDs, authorID)
		return u
	})
}

// UnsubscribeFrom removes authorID from the subscription list of userID.
// Unsubscribing from someone not subscribed to is a conflict.
func (s *Service) UnsubscribeFrom(ctx context.Context, userID, authorID string) (store.User, error) {
	user, found, err := s.store.Users.FindByID(ctx, userID)
	if err != nil {
		return store.User{}, err
	}
	if !found {
		return store.User{}, errors.WrapInvalid(errors.ErrNotFound,
			"Service", "UnsubscribeFrom", "subscriber lookup")
	}

	_, found, err = s.store.Users.FindByID(ctx, authorID)
	if err != nil {
		return store.User{}, err
	}
	if !found {
		return store.User{}, errors.WrapInvalid(errors.ErrNotFound,
			"Service", "UnsubscribeFrom", "author lookup")
	}

	if !slices.Contains(user.SubscribedToUserIDs, authorID) {
		return store.User{}, errors.WrapInvalid(errors.ErrConflict,
			"Service", "UnsubscribeFrom", "not subscribed")
	}

	return s.store.Users.Change(ctx, userID, func(u store.User) store.User {
		u.SubscribedToUserIDs = slices.DeleteFunc(u.SubscribedToUserIDs,
			func(s string) bool { return s == authorID })
		return u
	})
}

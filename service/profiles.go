package service

import (
	"context"

	"github.com/c360/memberhub/errors"
	"github.com/c360/memberhub/store"
)

// CreateProfile validates references and uniqueness, then stores a new
// profile. A user holds at most one profile; a second create is a conflict.
func (s *Service) CreateProfile(ctx context.Context, input CreateProfileInput) (store.Profile, error) {
	if input.UserID == "" || input.MemberTypeID == "" {
		return store.Profile{}, errors.WrapInvalid(errors.ErrInvalidInput,
			"Service", "CreateProfile", "userId and memberTypeId are required")
	}

	_, found, err := s.store.Users.FindByID(ctx, input.UserID)
	if err != nil {
		return store.Profile{}, err
	}
	if !found {
		return store.Profile{}, errors.WrapInvalid(errors.ErrNotFound,
			"Service", "CreateProfile", "user lookup")
	}

	_, found, err = s.store.MemberTypes.FindByID(ctx, input.MemberTypeID)
	if err != nil {
		return store.Profile{}, err
	}
	if !found {
		return store.Profile{}, errors.WrapInvalid(errors.ErrNotFound,
			"Service", "CreateProfile", "member type lookup")
	}

	_, found, err = s.store.Profiles.FindOne(ctx, store.Filter{Key: "userId", Equals: input.UserID})
	if err != nil {
		return store.Profile{}, err
	}
	if found {
		return store.Profile{}, errors.WrapInvalid(errors.ErrConflict,
			"Service", "CreateProfile", "profile already exists for user")
	}

	return s.store.Profiles.Create(ctx, store.Profile{
		Avatar:       input.Avatar,
		Sex:          input.Sex,
		Birthday:     input.Birthday,
		Country:      input.Country,
		Street:       input.Street,
		City:         input.City,
		UserID:       input.UserID,
		MemberTypeID: input.MemberTypeID,
	})
}

// UpdateProfile applies a partial patch to an existing profile. A changed
// member type id must reference an existing tier.
func (s *Service) UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (store.Profile, error) {
	if input.MemberTypeID != nil {
		_, found, err := s.store.MemberTypes.FindByID(ctx, *input.MemberTypeID)
		if err != nil {
			return store.Profile{}, err
		}
		if !found {
			return store.Profile{}, errors.WrapInvalid(errors.ErrNotFound,
				"Service", "UpdateProfile", "member type lookup")
		}
	}

	return s.store.Profiles.Change(ctx, id, func(p store.Profile) store.Profile {
		if input.Avatar != nil {
			p.Avatar = *input.Avatar
		}
		if input.Sex != nil {
			p.Sex = *input.Sex
		}
		if input.Birthday != nil {
			p.Birthday = *input.Birthday
		}
		if input.Country != nil {
			p.Country = *input.Country
		}
		if input.Street != nil {
			p.Street = *input.Street
		}
		if input.City != nil {
			p.City = *input.City
		}
		if input.MemberTypeID != nil {
			p.MemberTypeID = *input.MemberTypeID
		}
		return p
	})
}

// DeleteProfile removes a profile
func (s *Service) DeleteProfile(ctx context.Context, id string) (store.Profile, error) {
	return s.store.Profiles.Delete(ctx, id)
}

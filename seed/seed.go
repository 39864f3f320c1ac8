// Package seed populates a store with generated development data: users with
// randomized identities, a basic-or-business profile each, and a tier-sized
// batch of posts. Intended for local runs and demos, never production state.
package seed

import (
	"context"
	"log/slog"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/c360/memberhub/errors"
	"github.com/c360/memberhub/service"
	"github.com/c360/memberhub/store"
)

// postsPerTier sets how many posts each seeded user gets by member tier
var postsPerTier = map[string]int{
	store.MemberTypeBasic:    2,
	store.MemberTypeBusiness: 5,
}

// Populate creates count users, each with a profile on a random tier and the
// tier's post allotment. All writes go through the service so seeded data
// obeys the same invariants as API-created data.
func Populate(ctx context.Context, svc *service.Service, count int, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	faker := gofakeit.New(0)

	seededPosts := 0
	for i := 0; i < count; i++ {
		user, err := svc.CreateUser(ctx, service.CreateUserInput{
			FirstName: faker.FirstName(),
			LastName:  faker.LastName(),
			Email:     faker.Email(),
		})
		if err != nil {
			return errors.Wrap(err, "Seed", "Populate", "user creation")
		}

		tier := store.MemberTypeBasic
		if faker.Bool() {
			tier = store.MemberTypeBusiness
		}

		_, err = svc.CreateProfile(ctx, service.CreateProfileInput{
			Avatar:       faker.URL(),
			Sex:          faker.Gender(),
			Birthday:     faker.Date().UnixMilli(),
			Country:      faker.Country(),
			Street:       faker.Street(),
			City:         faker.City(),
			UserID:       user.ID,
			MemberTypeID: tier,
		})
		if err != nil {
			return errors.Wrap(err, "Seed", "Populate", "profile creation")
		}

		for p := 0; p < postsPerTier[tier]; p++ {
			_, err := svc.CreatePost(ctx, service.CreatePostInput{
				Title:   faker.Sentence(6),
				Content: faker.Paragraph(1, 10, 12, " "),
				UserID:  user.ID,
			})
			if err != nil {
				return errors.Wrap(err, "Seed", "Populate", "post creation")
			}
			seededPosts++
		}
	}

	logger.Info("store seeded",
		"users", count,
		"posts", seededPosts)
	return nil
}

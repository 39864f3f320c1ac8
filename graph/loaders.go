package graph

import (
	"context"

	"github.com/c360/memberhub/pkg/loader"
	"github.com/c360/memberhub/store"
)

// DispatchObserver is notified of every dispatched loader batch, keyed by
// relation name. Used for metrics; may be nil.
type DispatchObserver func(relation string, batchSize int)

// Loaders bundles the per-request batch loaders, one per foreign-key
// relation. A fresh set must be built for every execution; no loader state
// crosses requests.
//
// Note the key domains: PostsByUser, ProfileByUser and SubscribersByUser are
// keyed by user id, MemberTypeByID by member type id, UserByID by user id of
// the target. The two hops of User.memberType use different loaders for
// exactly this reason.
type Loaders struct {
	PostsByUser       *loader.Loader[string, []store.Post]
	ProfileByUser     *loader.Loader[string, *store.Profile]
	MemberTypeByID    *loader.Loader[string, *store.MemberType]
	UserByID          *loader.Loader[string, *store.User]
	SubscribersByUser *loader.Loader[string, []store.User]
}

// NewLoaders builds a fresh loader set over the store for one execution
func NewLoaders(st *store.Store, observe DispatchObserver) *Loaders {
	config := func(relation string) loader.Config {
		if observe == nil {
			return loader.Config{}
		}
		return loader.Config{
			OnDispatch: func(n int) { observe(relation, n) },
		}
	}

	return &Loaders{
		PostsByUser:       loader.New(postsByUser(st), config("posts_by_user")),
		ProfileByUser:     loader.New(profileByUser(st), config("profile_by_user")),
		MemberTypeByID:    loader.New(memberTypeByID(st), config("member_type_by_id")),
		UserByID:          loader.New(userByID(st), config("user_by_id")),
		SubscribersByUser: loader.New(subscribersByUser(st), config("subscribers_by_user")),
	}
}

// postsByUser fetches all posts for the requested author ids in one query
// and partitions them per author. Authors with no posts map to an empty
// slice, never nil.
func postsByUser(st *store.Store) loader.FetchFunc[string, []store.Post] {
	return func(ctx context.Context, userIDs []string) (map[string][]store.Post, error) {
		posts, err := st.Posts.FindMany(ctx, store.Filter{Key: "userId", EqualsAnyOf: userIDs})
		if err != nil {
			return nil, err
		}

		byUser := make(map[string][]store.Post, len(userIDs))
		for _, id := range userIDs {
			byUser[id] = []store.Post{}
		}
		for _, post := range posts {
			byUser[post.UserID] = append(byUser[post.UserID], post)
		}
		return byUser, nil
	}
}

// profileByUser fetches profiles for the requested user ids in one query.
// Users without a profile are absent from the result and resolve to nil.
func profileByUser(st *store.Store) loader.FetchFunc[string, *store.Profile] {
	return func(ctx context.Context, userIDs []string) (map[string]*store.Profile, error) {
		profiles, err := st.Profiles.FindMany(ctx, store.Filter{Key: "userId", EqualsAnyOf: userIDs})
		if err != nil {
			return nil, err
		}

		byUser := make(map[string]*store.Profile, len(profiles))
		for i := range profiles {
			byUser[profiles[i].UserID] = &profiles[i]
		}
		return byUser, nil
	}
}

// memberTypeByID fetches member tiers by their own ids. This loader's key
// space is member type ids, not user ids.
func memberTypeByID(st *store.Store) loader.FetchFunc[string, *store.MemberType] {
	return func(ctx context.Context, ids []string) (map[string]*store.MemberType, error) {
		tiers, err := st.MemberTypes.FindMany(ctx, store.Filter{Key: "id", EqualsAnyOf: ids})
		if err != nil {
			return nil, err
		}

		byID := make(map[string]*store.MemberType, len(tiers))
		for i := range tiers {
			byID[tiers[i].ID] = &tiers[i]
		}
		return byID, nil
	}
}

// userByID fetches users by id, used for the forward subscription relation
func userByID(st *store.Store) loader.FetchFunc[string, *store.User] {
	return func(ctx context.Context, ids []string) (map[string]*store.User, error) {
		users, err := st.Users.FindMany(ctx, store.Filter{Key: "id", EqualsAnyOf: ids})
		if err != nil {
			return nil, err
		}

		byID := make(map[string]*store.User, len(users))
		for i := range users {
			byID[users[i].ID] = &users[i]
		}
		return byID, nil
	}
}

// subscribersByUser serves the reverse subscription relation. The reverse
// index is built once per batch from a single scan of the users collection,
// not once per requested user.
func subscribersByUser(st *store.Store) loader.FetchFunc[string, []store.User] {
	return func(ctx context.Context, userIDs []string) (map[string][]store.User, error) {
		all, err := st.Users.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		requested := make(map[string]bool, len(userIDs))
		byUser := make(map[string][]store.User, len(userIDs))
		for _, id := range userIDs {
			requested[id] = true
			byUser[id] = []store.User{}
		}

		for _, candidate := range all {
			for _, followed := range candidate.SubscribedToUserIDs {
				if requested[followed] {
					byUser[followed] = append(byUser[followed], candidate)
				}
			}
		}
		return byUser, nil
	}
}

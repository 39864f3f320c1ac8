package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/memberhub/store"
)

type dispatchRecorder struct {
	batches map[string][]int
}

func newDispatchRecorder() *dispatchRecorder {
	return &dispatchRecorder{batches: map[string][]int{}}
}

func (r *dispatchRecorder) observe(relation string, batchSize int) {
	r.batches[relation] = append(r.batches[relation], batchSize)
}

func seedUsers(t *testing.T, st *store.Store, n int) []store.User {
	t.Helper()
	ctx := context.Background()
	users := make([]store.User, 0, n)
	for i := 0; i < n; i++ {
		u, err := st.Users.Create(ctx, store.User{
			FirstName:           "First",
			LastName:            "Last",
			Email:               "user@example.com",
			SubscribedToUserIDs: []string{},
		})
		require.NoError(t, err)
		users = append(users, u)
	}
	return users
}

// TestPostsByUserBatching verifies loads enqueued before the first force
// collapse into one store query, partitioned per author
func TestPostsByUserBatching(t *testing.T) {
	st := store.New()
	ctx := context.Background()
	users := seedUsers(t, st, 3)

	_, err := st.Posts.Create(ctx, store.Post{Title: "a", Content: "x", UserID: users[0].ID})
	require.NoError(t, err)
	_, err = st.Posts.Create(ctx, store.Post{Title: "b", Content: "y", UserID: users[0].ID})
	require.NoError(t, err)
	_, err = st.Posts.Create(ctx, store.Post{Title: "c", Content: "z", UserID: users[1].ID})
	require.NoError(t, err)

	rec := newDispatchRecorder()
	loaders := NewLoaders(st, rec.observe)

	thunks := make([]func() ([]store.Post, error), 0, len(users))
	for _, u := range users {
		thunks = append(thunks, loaders.PostsByUser.Load(ctx, u.ID))
	}

	first, err := thunks[0]()
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := thunks[1]()
	require.NoError(t, err)
	assert.Len(t, second, 1)

	// Authors with no posts resolve to an empty slice, never nil
	third, err := thunks[2]()
	require.NoError(t, err)
	require.NotNil(t, third)
	assert.Empty(t, third)

	assert.Equal(t, []int{3}, rec.batches["posts_by_user"])
}

// TestProfileByUserAbsent verifies users without a profile resolve to nil
func TestProfileByUserAbsent(t *testing.T) {
	st := store.New()
	ctx := context.Background()
	users := seedUsers(t, st, 2)

	_, err := st.Profiles.Create(ctx, store.Profile{
		Avatar: "a.png", Sex: "female", Birthday: 1, Country: "NL",
		Street: "Main", City: "Delft",
		UserID: users[0].ID, MemberTypeID: store.MemberTypeBasic,
	})
	require.NoError(t, err)

	rec := newDispatchRecorder()
	loaders := NewLoaders(st, rec.observe)

	withProfile := loaders.ProfileByUser.Load(ctx, users[0].ID)
	withoutProfile := loaders.ProfileByUser.Load(ctx, users[1].ID)

	profile, err := withProfile()
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, users[0].ID, profile.UserID)

	absent, err := withoutProfile()
	require.NoError(t, err)
	assert.Nil(t, absent)

	assert.Equal(t, []int{2}, rec.batches["profile_by_user"])
}

// TestMemberTypeByIDDedup verifies repeated tier keys dedup into one fetch key
func TestMemberTypeByIDDedup(t *testing.T) {
	st := store.New()
	ctx := context.Background()

	rec := newDispatchRecorder()
	loaders := NewLoaders(st, rec.observe)

	a := loaders.MemberTypeByID.Load(ctx, store.MemberTypeBasic)
	b := loaders.MemberTypeByID.Load(ctx, store.MemberTypeBasic)
	c := loaders.MemberTypeByID.Load(ctx, store.MemberTypeBusiness)

	tier, err := a()
	require.NoError(t, err)
	require.NotNil(t, tier)
	assert.Equal(t, store.MemberTypeBasic, tier.ID)

	again, err := b()
	require.NoError(t, err)
	assert.Same(t, tier, again)

	business, err := c()
	require.NoError(t, err)
	require.NotNil(t, business)
	assert.Equal(t, store.MemberTypeBusiness, business.ID)

	assert.Equal(t, []int{2}, rec.batches["member_type_by_id"])
}

// TestSubscribersByUserReverseIndex verifies the reverse relation is served
// from one scan per batch and groups followers correctly
func TestSubscribersByUserReverseIndex(t *testing.T) {
	st := store.New()
	ctx := context.Background()
	users := seedUsers(t, st, 4)

	// users[1] and users[2] follow users[0]; users[3] follows users[1]
	subscribe := func(followerID, authorID string) {
		_, err := st.Users.Change(ctx, followerID, func(u store.User) store.User {
			u.SubscribedToUserIDs = append(u.SubscribedToUserIDs, authorID)
			return u
		})
		require.NoError(t, err)
	}
	subscribe(users[1].ID, users[0].ID)
	subscribe(users[2].ID, users[0].ID)
	subscribe(users[3].ID, users[1].ID)

	rec := newDispatchRecorder()
	loaders := NewLoaders(st, rec.observe)

	ofFirst := loaders.SubscribersByUser.Load(ctx, users[0].ID)
	ofSecond := loaders.SubscribersByUser.Load(ctx, users[1].ID)
	ofLast := loaders.SubscribersByUser.Load(ctx, users[3].ID)

	followers, err := ofFirst()
	require.NoError(t, err)
	ids := make([]string, 0, len(followers))
	for _, f := range followers {
		ids = append(ids, f.ID)
	}
	assert.ElementsMatch(t, []string{users[1].ID, users[2].ID}, ids)

	followers, err = ofSecond()
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, users[3].ID, followers[0].ID)

	followers, err = ofLast()
	require.NoError(t, err)
	require.NotNil(t, followers)
	assert.Empty(t, followers)

	assert.Equal(t, []int{3}, rec.batches["subscribers_by_user"])
}

// TestLoadersAreRequestScoped verifies two loader sets over the same store
// do not share caches
func TestLoadersAreRequestScoped(t *testing.T) {
	st := store.New()
	ctx := context.Background()

	rec := newDispatchRecorder()
	first := NewLoaders(st, rec.observe)
	second := NewLoaders(st, rec.observe)

	_, err := first.MemberTypeByID.Load(ctx, store.MemberTypeBasic)()
	require.NoError(t, err)
	_, err = second.MemberTypeByID.Load(ctx, store.MemberTypeBasic)()
	require.NoError(t, err)

	assert.Equal(t, []int{1, 1}, rec.batches["member_type_by_id"])
}

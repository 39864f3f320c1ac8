package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/c360/memberhub/errors"
	"github.com/c360/memberhub/store"
)

// schemaBuilder holds the object types while the schema is wired together.
// The user type is self-referential through the subscription relations, so
// relational fields are attached after the base types exist.
type schemaBuilder struct {
	userType       *graphql.Object
	postType       *graphql.Object
	profileType    *graphql.Object
	memberTypeType *graphql.Object

	// Mutation result wrappers, one per entity kind
	userPayload       *graphql.Object
	postPayload       *graphql.Object
	profilePayload    *graphql.Object
	memberTypePayload *graphql.Object
}

func (b *schemaBuilder) buildEntityTypes() {
	b.memberTypeType = graphql.NewObject(graphql.ObjectConfig{
		Name: "MemberType",
		Fields: graphql.Fields{
			"id":              &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"discount":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"monthPostsLimit": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	b.postType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"id":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"content": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"userId":  &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		},
	})

	b.profileType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Profile",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"avatar":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"sex":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"birthday":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"country":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"street":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"city":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"userId":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"memberTypeId": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	b.userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":                  &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"firstName":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"lastName":            &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":               &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"subscribedToUserIds": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID)))},
		},
	})

	b.attachUserRelations()

	b.userPayload = payloadObject("UserPayload", "user", b.userType)
	b.postPayload = payloadObject("PostPayload", "post", b.postType)
	b.profilePayload = payloadObject("ProfilePayload", "profile", b.profileType)
	b.memberTypePayload = payloadObject("MemberTypePayload", "memberType", b.memberTypeType)
}

// payloadObject builds a mutation result wrapper holding the mutated entity
// under a single named field
func payloadObject(name, field string, entity *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			field: &graphql.Field{Type: entity},
		},
	})
}

// attachUserRelations wires the relational fields of User. Every resolver
// enqueues its loads and returns a thunk; the engine invokes all sibling
// resolvers before forcing thunks, which is what lets the loads of one
// selection level share a single batched store query.
func (b *schemaBuilder) attachUserRelations() {
	b.userType.AddFieldConfig("posts", &graphql.Field{
		Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.postType))),
		Description: "Posts authored by this user; empty when there are none",
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, loaders, err := userResolveContext(p)
			if err != nil {
				return nil, err
			}

			thunk := loaders.PostsByUser.Load(p.Context, user.ID)
			return func() (interface{}, error) {
				posts, err := thunk()
				if err != nil {
					return nil, wrapResolverError(err, "User.posts")
				}
				return posts, nil
			}, nil
		},
	})

	b.userType.AddFieldConfig("profile", &graphql.Field{
		Type:        b.profileType,
		Description: "The user's profile, or null when none exists",
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, loaders, err := userResolveContext(p)
			if err != nil {
				return nil, err
			}

			thunk := loaders.ProfileByUser.Load(p.Context, user.ID)
			return func() (interface{}, error) {
				profile, err := thunk()
				if err != nil {
					return nil, wrapResolverError(err, "User.profile")
				}
				if profile == nil {
					return nil, nil
				}
				return *profile, nil
			}, nil
		},
	})

	b.userType.AddFieldConfig("memberType", &graphql.Field{
		Type:        b.memberTypeType,
		Description: "The member tier of the user's profile; resolving it without a profile is an error",
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, loaders, err := userResolveContext(p)
			if err != nil {
				return nil, err
			}

			// Two-hop join: profile by user id, then member type by its
			// own id. The loaders use different key domains. The second
			// hop enqueues inside the forced thunk, so tier lookups
			// coalesce only through the per-key cache: at most one
			// singleton batch per distinct tier id per request.
			profileThunk := loaders.ProfileByUser.Load(p.Context, user.ID)
			return func() (interface{}, error) {
				profile, err := profileThunk()
				if err != nil {
					return nil, wrapResolverError(err, "User.memberType")
				}
				if profile == nil {
					return nil, wrapResolverError(errors.WrapInvalid(errors.ErrNotFound,
						"User", "memberType", "profile required for member type"), "User.memberType")
				}

				tier, err := loaders.MemberTypeByID.Load(p.Context, profile.MemberTypeID)()
				if err != nil {
					return nil, wrapResolverError(err, "User.memberType")
				}
				if tier == nil {
					return nil, wrapResolverError(errors.WrapInvalid(errors.ErrNotFound,
						"User", "memberType", "member type lookup"), "User.memberType")
				}
				return *tier, nil
			}, nil
		},
	})

	b.userType.AddFieldConfig("subscribedTo", &graphql.Field{
		Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.userType))),
		Description: "Users this user follows",
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, loaders, err := userResolveContext(p)
			if err != nil {
				return nil, err
			}

			thunk := loaders.UserByID.LoadMany(p.Context, user.SubscribedToUserIDs)
			return func() (interface{}, error) {
				found, err := thunk()
				if err != nil {
					return nil, wrapResolverError(err, "User.subscribedTo")
				}
				users := make([]store.User, 0, len(found))
				for _, u := range found {
					if u != nil {
						users = append(users, *u)
					}
				}
				return users, nil
			}, nil
		},
	})

	b.userType.AddFieldConfig("subscribers", &graphql.Field{
		Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.userType))),
		Description: "Users following this user",
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, loaders, err := userResolveContext(p)
			if err != nil {
				return nil, err
			}

			thunk := loaders.SubscribersByUser.Load(p.Context, user.ID)
			return func() (interface{}, error) {
				users, err := thunk()
				if err != nil {
					return nil, wrapResolverError(err, "User.subscribers")
				}
				return users, nil
			}, nil
		},
	})
}

// userResolveContext extracts the parent user and the per-request loaders
func userResolveContext(p graphql.ResolveParams) (store.User, *Loaders, error) {
	user, ok := p.Source.(store.User)
	if !ok {
		return store.User{}, nil, wrapResolverError(errors.WrapInvalid(errors.ErrInvalidInput,
			"User", "resolve", "unexpected source type"), "User")
	}
	loaders := loadersFrom(p.Context)
	if loaders == nil {
		return store.User{}, nil, wrapResolverError(errors.WrapFatal(errors.ErrMissingConfig,
			"User", "resolve", "request loaders missing from context"), "User")
	}
	return user, loaders, nil
}

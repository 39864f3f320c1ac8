package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/c360/memberhub/errors"
	"github.com/c360/memberhub/service"
	"github.com/c360/memberhub/store"
)

// NewSchema assembles the executable schema. The schema itself is stateless
// and safe to share; the store, service and loaders are injected through the
// request context at execution time.
func NewSchema() (graphql.Schema, error) {
	b := &schemaBuilder{}
	b.buildEntityTypes()

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    b.buildQuery(),
		Mutation: b.buildMutation(),
	})
}

// buildQuery wires the read surface. Collection fields return every entity;
// singular by-id fields return null when the id is unknown rather than
// erroring, so clients can probe for existence.
func (b *schemaBuilder) buildQuery() *graphql.Object {
	idArg := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.userType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					st, err := requestStore(p)
					if err != nil {
						return nil, err
					}
					users, err := st.Users.FindAll(p.Context)
					if err != nil {
						return nil, wrapResolverError(err, "Query.users")
					}
					return users, nil
				},
			},
			"user": &graphql.Field{
				Type: b.userType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					st, err := requestStore(p)
					if err != nil {
						return nil, err
					}
					user, found, err := st.Users.FindByID(p.Context, idFromArgs(p))
					if err != nil {
						return nil, wrapResolverError(err, "Query.user")
					}
					if !found {
						return nil, nil
					}
					return user, nil
				},
			},
			"posts": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.postType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					st, err := requestStore(p)
					if err != nil {
						return nil, err
					}
					posts, err := st.Posts.FindAll(p.Context)
					if err != nil {
						return nil, wrapResolverError(err, "Query.posts")
					}
					return posts, nil
				},
			},
			"post": &graphql.Field{
				Type: b.postType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					st, err := requestStore(p)
					if err != nil {
						return nil, err
					}
					post, found, err := st.Posts.FindByID(p.Context, idFromArgs(p))
					if err != nil {
						return nil, wrapResolverError(err, "Query.post")
					}
					if !found {
						return nil, nil
					}
					return post, nil
				},
			},
			"profiles": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.profileType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					st, err := requestStore(p)
					if err != nil {
						return nil, err
					}
					profiles, err := st.Profiles.FindAll(p.Context)
					if err != nil {
						return nil, wrapResolverError(err, "Query.profiles")
					}
					return profiles, nil
				},
			},
			"profile": &graphql.Field{
				Type: b.profileType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					st, err := requestStore(p)
					if err != nil {
						return nil, err
					}
					profile, found, err := st.Profiles.FindByID(p.Context, idFromArgs(p))
					if err != nil {
						return nil, wrapResolverError(err, "Query.profile")
					}
					if !found {
						return nil, nil
					}
					return profile, nil
				},
			},
			"memberTypes": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.memberTypeType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					st, err := requestStore(p)
					if err != nil {
						return nil, err
					}
					tiers, err := st.MemberTypes.FindAll(p.Context)
					if err != nil {
						return nil, wrapResolverError(err, "Query.memberTypes")
					}
					return tiers, nil
				},
			},
			"memberType": &graphql.Field{
				Type: b.memberTypeType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					st, err := requestStore(p)
					if err != nil {
						return nil, err
					}
					tier, found, err := st.MemberTypes.FindByID(p.Context, idFromArgs(p))
					if err != nil {
						return nil, wrapResolverError(err, "Query.memberType")
					}
					if !found {
						return nil, nil
					}
					return tier, nil
				},
			},
		},
	})
}

// buildMutation wires the write surface onto the service layer, which owns
// validation and cascade semantics. Every mutation resolves to a payload
// object wrapping the affected entity. Updates take the id alongside a
// partial input; omitted input fields leave the stored value untouched.
//
// Named types must be single instances: every input and payload object is
// built once and shared by the fields that use it.
func (b *schemaBuilder) buildMutation() *graphql.Object {
	idArg := &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}
	subInput := graphql.NewNonNull(subscriptionInput())

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"userCreate": &graphql.Field{
				Type: graphql.NewNonNull(b.userPayload),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userCreateInput())},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					svc, err := requestService(p)
					if err != nil {
						return nil, err
					}
					in := inputArg(p)
					user, err := svc.CreateUser(p.Context, service.CreateUserInput{
						FirstName: stringArg(in, "firstName"),
						LastName:  stringArg(in, "lastName"),
						Email:     stringArg(in, "email"),
					})
					if err != nil {
						return nil, wrapResolverError(err, "Mutation.userCreate")
					}
					return map[string]interface{}{"user": user}, nil
				},
			},
			"userUpdate": &graphql.Field{
				Type: graphql.NewNonNull(b.userPayload),
				Args: graphql.FieldConfigArgument{
					"id":    idArg,
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userUpdateInput())},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					svc, err := requestService(p)
					if err != nil {
						return nil, err
					}
					in := inputArg(p)
					user, err := svc.UpdateUser(p.Context, idFromArgs(p), service.UpdateUserInput{
						FirstName: stringPtrArg(in, "firstName"),
						LastName:  stringPtrArg(in, "lastName"),
						Email:     stringPtrArg(in, "email"),
					})
					if err != nil {
						return nil, wrapResolverError(err, "Mutation.userUpdate")
					}
					return map[string]interface{}{"user": user}, nil
				},
			},
			"userDelete": &graphql.Field{
				Type: graphql.NewNonNull(b.userPayload),
				Args: graphql.FieldConfigArgument{"id": idArg},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					svc, err := requestService(p)
					if err != nil {
						return nil, err
					}
					user, err := svc.DeleteUser(p.Context, idFromArgs(p))
					if err != nil {
						return nil, wrapResolverError(err, "Mutation.userDelete")
					}
					return map[string]interface{}{"user": user}, nil
				},
			},
			"postCreate": &graphql.Field{
				Type: graphql.NewNonNull(b.postPayload),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(postCreateInput())},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					svc, err := requestService(p)
					if err != nil {
						return nil, err
					}
					in := inputArg(p)
					post, err := svc.CreatePost(p.Context, service.CreatePostInput{
						Title:   stringArg(in, "title"),
						Content: stringArg(in, "content"),
						UserID:  stringArg(in, "userId"),
					})
					if err != nil {
						return nil, wrapResolverError(err, "Mutation.postCreate")
					}
					return map[string]interface{}{"post": post}, nil
				},
			},
			"postUpdate": &graphql.Field{
				Type: graphql.NewNonNull(b.postPayload),
				Args: graphql.FieldConfigArgument{
					"id":    idArg,
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(postUpdateInput())},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					svc, err := requestService(p)
					if err != nil {
						return nil, err
					}
					in := inputArg(p)
					post, err := svc.UpdatePost(p.Context, idFromArgs(p), service.UpdatePostInput{
						Title:   stringPtrArg(in, "title"),
						Content: stringPtrArg(in, "content"),
					})
					if err != nil {
						return nil, wrapResolverError(err, "Mutation.postUpdate")
					}
					return map[string]interface{}{"post": post}, nil
				},
			},
			"postDelete": &graphql.Field{
				Type: graphql.NewNonNull(b.postPayload),
				Args: graphql.FieldConfigArgument{"id": idArg},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					svc, err := requestService(p)
					if err != nil {
						return nil, err
					}
					post, err := svc.DeletePost(p.Context, idFromArgs(p))
					if err != nil {
						return nil, wrapResolverError(err, "Mutation.postDelete")
					}
					return map[string]interface{}{"post": post}, nil
				},
			},
			"profileCreate": &graphql.Field{
				Type: graphql.NewNonNull(b.profilePayload),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(profileCreateInput())},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					svc, err := requestService(p)
					if err != nil {
						return nil, err
					}
					in := inputArg(p)
					profile, err := svc.CreateProfile(p.Context, service.CreateProfileInput{
						Avatar:       stringArg(in, "avatar"),
						Sex:          stringArg(in, "sex"),
						Birthday:     int64Arg(in, "birthday"),
						Country:      stringArg(in, "country"),
						Street:       stringArg(in, "street"),
						City:         stringArg(in, "city"),
						UserID:       stringArg(in, "userId"),
						MemberTypeID: stringArg(in, "memberTypeId"),
					})
					if err != nil {
						return nil, wrapResolverError(err, "Mutation.profileCreate")
					}
					return map[string]interface{}{"profile": profile}, nil
				},
			},
			"profileUpdate": &graphql.Field{
				Type: graphql.NewNonNull(b.profilePayload),
				Args: graphql.FieldConfigArgument{
					"id":    idArg,
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(profileUpdateInput())},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					svc, err := requestService(p)
					if err != nil {
						return nil, err
					}
					in := inputArg(p)
					profile, err := svc.UpdateProfile(p.Context, idFromArgs(p), service.UpdateProfileInput{
						Avatar:       stringPtrArg(in, "avatar"),
						Sex:          stringPtrArg(in, "sex"),
						Birthday:     int64PtrArg(in, "birthday"),
						Country:      stringPtrArg(in, "country"),
						Street:       stringPtrArg(in, "street"),
						City:         stringPtrArg(in, "city"),
						MemberTypeID: stringPtrArg(in, "memberTypeId"),
					})
					if err != nil {
						return nil, wrapResolverError(err, "Mutation.profileUpdate")
					}
					return map[string]interface{}{"profile": profile}, nil
				},
			},
			"profileDelete": &graphql.Field{
				Type: graphql.NewNonNull(b.profilePayload),
				Args: graphql.FieldConfigArgument{"id": idArg},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					svc, err := requestService(p)
					if err != nil {
						return nil, err
					}
					profile, err := svc.DeleteProfile(p.Context, idFromArgs(p))
					if err != nil {
						return nil, wrapResolverError(err, "Mutation.profileDelete")
					}
					return map[string]interface{}{"profile": profile}, nil
				},
			},
			"memberTypeUpdate": &graphql.Field{
				Type: graphql.NewNonNull(b.memberTypePayload),
				Args: graphql.FieldConfigArgument{
					"id":    idArg,
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(memberTypeUpdateInput())},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					svc, err := requestService(p)
					if err != nil {
						return nil, err
					}
					in := inputArg(p)
					tier, err := svc.UpdateMemberType(p.Context, idFromArgs(p), service.UpdateMemberTypeInput{
						Discount:        intPtrArg(in, "discount"),
						MonthPostsLimit: intPtrArg(in, "monthPostsLimit"),
					})
					if err != nil {
						return nil, wrapResolverError(err, "Mutation.memberTypeUpdate")
					}
					return map[string]interface{}{"memberType": tier}, nil
				},
			},
			"subscribeTo": &graphql.Field{
				Type:        graphql.NewNonNull(b.userPayload),
				Description: "Subscribe userId to authorId; the payload carries the updated subscriber",
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: subInput},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					svc, err := requestService(p)
					if err != nil {
						return nil, err
					}
					in := inputArg(p)
					user, err := svc.SubscribeTo(p.Context, stringArg(in, "userId"), stringArg(in, "authorId"))
					if err != nil {
						return nil, wrapResolverError(err, "Mutation.subscribeTo")
					}
					return map[string]interface{}{"user": user}, nil
				},
			},
			"unsubscribeFrom": &graphql.Field{
				Type:        graphql.NewNonNull(b.userPayload),
				Description: "Unsubscribe userId from authorId; the payload carries the updated subscriber",
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: subInput},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					svc, err := requestService(p)
					if err != nil {
						return nil, err
					}
					in := inputArg(p)
					user, err := svc.UnsubscribeFrom(p.Context, stringArg(in, "userId"), stringArg(in, "authorId"))
					if err != nil {
						return nil, wrapResolverError(err, "Mutation.unsubscribeFrom")
					}
					return map[string]interface{}{"user": user}, nil
				},
			},
		},
	})
}

func idFromArgs(p graphql.ResolveParams) string {
	id, _ := p.Args["id"].(string)
	return id
}

func requestStore(p graphql.ResolveParams) (*store.Store, error) {
	st := storeFrom(p.Context)
	if st == nil {
		return nil, wrapResolverError(errors.WrapFatal(errors.ErrMissingConfig,
			"Schema", "resolve", "store missing from request context"), "Query")
	}
	return st, nil
}

func requestService(p graphql.ResolveParams) (*service.Service, error) {
	svc := serviceFrom(p.Context)
	if svc == nil {
		return nil, wrapResolverError(errors.WrapFatal(errors.ErrMissingConfig,
			"Schema", "resolve", "service missing from request context"), "Mutation")
	}
	return svc, nil
}

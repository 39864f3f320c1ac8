package graph

import "github.com/graphql-go/graphql"

// Input objects for the mutation surface. Create inputs require every
// field; update inputs are partial patches where omitted fields are left
// unchanged.

func userCreateInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserCreateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"firstName": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"lastName":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})
}

func userUpdateInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"firstName": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"lastName":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
}

func postCreateInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PostCreateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"content": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"userId":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
	})
}

func postUpdateInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PostUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"content": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
}

func profileCreateInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ProfileCreateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"avatar":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"sex":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"birthday":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"country":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"street":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"city":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"userId":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"memberTypeId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})
}

func profileUpdateInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ProfileUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"avatar":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"sex":          &graphql.InputObjectFieldConfig{Type: graphql.String},
			"birthday":     &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"country":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"street":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"city":         &graphql.InputObjectFieldConfig{Type: graphql.String},
			"memberTypeId": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
}

func memberTypeUpdateInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "MemberTypeUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"discount":        &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"monthPostsLimit": &graphql.InputObjectFieldConfig{Type: graphql.Int},
		},
	})
}

func subscriptionInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SubscriptionInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"userId":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"authorId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
	})
}

// Argument decoding helpers. graphql-go hands input objects to resolvers as
// map[string]interface{} with scalars already coerced.

func inputArg(p graphql.ResolveParams) map[string]interface{} {
	m, _ := p.Args["input"].(map[string]interface{})
	return m
}

func stringArg(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func stringPtrArg(m map[string]interface{}, key string) *string {
	if s, ok := m[key].(string); ok {
		return &s
	}
	return nil
}

func intPtrArg(m map[string]interface{}, key string) *int {
	if n, ok := m[key].(int); ok {
		return &n
	}
	return nil
}

func int64Arg(m map[string]interface{}, key string) int64 {
	if f, ok := m[key].(float64); ok {
		return int64(f)
	}
	if n, ok := m[key].(int); ok {
		return int64(n)
	}
	return 0
}

func int64PtrArg(m map[string]interface{}, key string) *int64 {
	if _, ok := m[key]; !ok {
		return nil
	}
	v := int64Arg(m, key)
	return &v
}

package store

// Store bundles the four entity collections. One Store is shared across all
// requests; a handle is injected explicitly wherever data access happens,
// never reached through a process-wide singleton.
type Store struct {
	Users       *Collection[User]
	Posts       *Collection[Post]
	Profiles    *Collection[Profile]
	MemberTypes *Collection[MemberType]
}

// New creates an empty store with the fixed member type tiers pre-registered
func New() *Store {
	s := &Store{
		Users:       NewCollection("Users", userField),
		Posts:       NewCollection("Posts", postField),
		Profiles:    NewCollection("Profiles", profileField),
		MemberTypes: NewCollection("MemberTypes", memberTypeField),
	}

	// The tier set is fixed; tiers are updatable but never created or
	// deleted through the API
	s.MemberTypes.items[MemberTypeBasic] = MemberType{
		ID:              MemberTypeBasic,
		Discount:        0,
		MonthPostsLimit: 20,
	}
	s.MemberTypes.items[MemberTypeBusiness] = MemberType{
		ID:              MemberTypeBusiness,
		Discount:        20,
		MonthPostsLimit: 100,
	}
	s.MemberTypes.order = []string{MemberTypeBasic, MemberTypeBusiness}

	return s
}

package store

// MemberTypeBasic and MemberTypeBusiness are the fixed member tier ids.
const (
	MemberTypeBasic    = "basic"
	MemberTypeBusiness = "business"
)

// User is an account holding the directed subscription graph.
// SubscribedToUserIDs holds the ids this user follows; a user's own id
// never appears in its own list.
type User struct {
	ID                  string   `json:"id"`
	FirstName           string   `json:"firstName"`
	LastName            string   `json:"lastName"`
	Email               string   `json:"email"`
	SubscribedToUserIDs []string `json:"subscribedToUserIds"`
}

// GetID returns the user id
func (u User) GetID() string { return u.ID }

// WithID returns a copy of the user with the given id
func (u User) WithID(id string) User { u.ID = id; return u }

// Clone returns a deep copy so stored state cannot be mutated through
// returned snapshots
func (u User) Clone() User {
	ids := make([]string, len(u.SubscribedToUserIDs))
	copy(ids, u.SubscribedToUserIDs)
	u.SubscribedToUserIDs = ids
	return u
}

// Post is an article authored by a user
type Post struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  string `json:"userId"`
}

// GetID returns the post id
func (p Post) GetID() string { return p.ID }

// WithID returns a copy of the post with the given id
func (p Post) WithID(id string) Post { p.ID = id; return p }

// Clone returns a copy of the post
func (p Post) Clone() Post { return p }

// Profile holds per-user profile data; at most one profile exists per user
type Profile struct {
	ID           string `json:"id"`
	Avatar       string `json:"avatar"`
	Sex          string `json:"sex"`
	Birthday     int64  `json:"birthday"`
	Country      string `json:"country"`
	Street       string `json:"street"`
	City         string `json:"city"`
	UserID       string `json:"userId"`
	MemberTypeID string `json:"memberTypeId"`
}

// GetID returns the profile id
func (p Profile) GetID() string { return p.ID }

// WithID returns a copy of the profile with the given id
func (p Profile) WithID(id string) Profile { p.ID = id; return p }

// Clone returns a copy of the profile
func (p Profile) Clone() Profile { return p }

// MemberType is a membership tier from a small fixed set
type MemberType struct {
	ID              string `json:"id"`
	Discount        int    `json:"discount"`
	MonthPostsLimit int    `json:"monthPostsLimit"`
}

// GetID returns the member type id
func (m MemberType) GetID() string { return m.ID }

// WithID returns a copy of the member type with the given id
func (m MemberType) WithID(id string) MemberType { m.ID = id; return m }

// Clone returns a copy of the member type
func (m MemberType) Clone() MemberType { return m }

// userField resolves filterable User fields by key
func userField(u User, key string) (any, bool) {
	switch key {
	case "id":
		return u.ID, true
	case "firstName":
		return u.FirstName, true
	case "lastName":
		return u.LastName, true
	case "email":
		return u.Email, true
	case "subscribedToUserIds":
		return u.SubscribedToUserIDs, true
	}
	return nil, false
}

// postField resolves filterable Post fields by key
func postField(p Post, key string) (any, bool) {
	switch key {
	case "id":
		return p.ID, true
	case "title":
		return p.Title, true
	case "userId":
		return p.UserID, true
	}
	return nil, false
}

// profileField resolves filterable Profile fields by key
func profileField(p Profile, key string) (any, bool) {
	switch key {
	case "id":
		return p.ID, true
	case "userId":
		return p.UserID, true
	case "memberTypeId":
		return p.MemberTypeID, true
	}
	return nil, false
}

// memberTypeField resolves filterable MemberType fields by key
func memberTypeField(m MemberType, key string) (any, bool) {
	switch key {
	case "id":
		return m.ID, true
	}
	return nil, false
}

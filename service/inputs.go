package service

// CreateUserInput carries the required fields for a new user
type CreateUserInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// UpdateUserInput is a partial patch; nil fields are left unchanged
type UpdateUserInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
}

// CreatePostInput carries the required fields for a new post
type CreatePostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  string `json:"userId"`
}

// UpdatePostInput is a partial patch; nil fields are left unchanged
type UpdatePostInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// CreateProfileInput carries the required fields for a new profile
type CreateProfileInput struct {
	Avatar       string `json:"avatar"`
	Sex          string `json:"sex"`
	Birthday     int64  `json:"birthday"`
	Country      string `json:"country"`
	Street       string `json:"street"`
	City         string `json:"city"`
	UserID       string `json:"userId"`
	MemberTypeID string `json:"memberTypeId"`
}

// UpdateProfileInput is a partial patch; nil fields are left unchanged
type UpdateProfileInput struct {
	Avatar       *string `json:"avatar"`
	Sex          *string `json:"sex"`
	Birthday     *int64  `json:"birthday"`
	Country      *string `json:"country"`
	Street       *string `json:"street"`
	City         *string `json:"city"`
	MemberTypeID *string `json:"memberTypeId"`
}

// UpdateMemberTypeInput is a partial patch for a member tier
type UpdateMemberTypeInput struct {
	Discount        *int `json:"discount"`
	MonthPostsLimit *int `json:"monthPostsLimit"`
}

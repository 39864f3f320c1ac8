package service

import (
	"context"

	"github.com/c360/memberhub/store"
)

// UpdateMemberType applies a partial patch to a member tier. The tier set is
// fixed; tiers cannot be created or deleted.
func (s *Service) UpdateMemberType(ctx context.Context, id string, input UpdateMemberTypeInput) (store.MemberType, error) {
	return s.store.MemberTypes.Change(ctx, id, func(m store.MemberType) store.MemberType {
		if input.Discount != nil {
			m.Discount = *input.Discount
		}
		if input.MonthPostsLimit != nil {
			m.MonthPostsLimit = *input.MonthPostsLimit
		}
		return m
	})
}

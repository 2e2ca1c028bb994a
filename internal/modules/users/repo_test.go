package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortByRolePriority(t *testing.T) {
	rows := []User{
		{ID: "c1", Role: RoleCustomer},
		{ID: "s1", Role: RoleShipper},
		{ID: "a1", Role: RoleAdmin},
		{ID: "o1", Role: RoleStoreOwner},
		{ID: "x1", Role: "SUPPORT_BOT"},
		{ID: "c2", Role: RoleCustomer},
	}

	SortByRolePriority(rows)

	got := make([]string, len(rows))
	for i, u := range rows {
		got[i] = u.ID
	}
	// admins first, unknown roles last, equal roles keep input order
	assert.Equal(t, []string{"a1", "o1", "s1", "c1", "c2", "x1"}, got)
}

func TestRolePriorityUnknown(t *testing.T) {
	assert.Greater(t, RolePriority("WHATEVER"), RolePriority(RoleCustomer))
}

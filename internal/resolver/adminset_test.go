package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminSet_Dedup(t *testing.T) {
	set := NewAdminSet()

	assert.True(t, set.Add("alice"))
	assert.True(t, set.Add("bob"))
	assert.False(t, set.Add("alice"), "duplicate login must not be added")

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"alice", "bob"}, set.Logins())
}

func TestAdminSet_PreservesInsertionOrder(t *testing.T) {
	set := NewAdminSet()
	for _, login := range []string{"carol", "alice", "bob", "alice", "carol"} {
		set.Add(login)
	}

	assert.Equal(t, []string{"carol", "alice", "bob"}, set.Logins())
}

func TestAdminSet_Contains(t *testing.T) {
	set := NewAdminSet()
	set.Add("alice")

	assert.True(t, set.Contains("alice"))
	assert.False(t, set.Contains("bob"))
}

func TestAdminSet_LoginsIsACopy(t *testing.T) {
	set := NewAdminSet()
	set.Add("alice")

	logins := set.Logins()
	logins[0] = "mallory"

	assert.Equal(t, []string{"alice"}, set.Logins())
}

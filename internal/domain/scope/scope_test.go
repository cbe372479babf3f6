package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
)

func strPtr(s string) *string { return &s }

func TestForTask(t *testing.T) {
	t.Run("admin sees everything", func(t *testing.T) {
		sc := ForTask(user.Principal{ID: "a1", Role: user.RoleAdmin})

		assert.True(t, sc.All)
		assert.True(t, sc.Allows("x", "y", nil))
	})

	t.Run("team lead sees own, created and team tasks", func(t *testing.T) {
		sc := ForTask(user.Principal{ID: "tl1", Role: user.RoleTeamLead})

		assert.True(t, sc.Allows("someone", "tl1", nil), "assigned to the lead")
		assert.True(t, sc.Allows("tl1", "someone", nil), "created by the lead")
		assert.True(t, sc.Allows("someone", "i1", strPtr("tl1")), "assigned to the lead's internee")
		assert.False(t, sc.Allows("someone", "i2", strPtr("other-lead")))
		assert.False(t, sc.Allows("someone", "i2", nil))
	})

	t.Run("members see only their own tasks", func(t *testing.T) {
		for _, role := range []user.Role{user.RoleEmployee, user.RoleInternee} {
			sc := ForTask(user.Principal{ID: "u1", Role: role})

			assert.True(t, sc.Allows("someone", "u1", nil))
			assert.False(t, sc.Allows("u1", "someone", nil), "creating edge does not widen member scope")
		}
	})
}

func TestForOwnTasks(t *testing.T) {
	// Even an admin's my-tasks view is assignee-only.
	sc := ForOwnTasks(user.Principal{ID: "a1", Role: user.RoleAdmin})

	assert.False(t, sc.All)
	assert.True(t, sc.Allows("x", "a1", nil))
	assert.False(t, sc.Allows("a1", "x", nil))
}

func TestForUserList(t *testing.T) {
	t.Run("admin lists anyone with role filter", func(t *testing.T) {
		sc, err := ForUserList(user.Principal{ID: "a1", Role: user.RoleAdmin}, user.RoleEmployee)

		require.NoError(t, err)
		assert.True(t, sc.All)
		assert.Equal(t, user.RoleEmployee, sc.Role)
	})

	t.Run("team lead lists only own internees", func(t *testing.T) {
		sc, err := ForUserList(user.Principal{ID: "tl1", Role: user.RoleTeamLead}, "")

		require.NoError(t, err)
		assert.False(t, sc.All)
		assert.Equal(t, user.RoleInternee, sc.Role)
		assert.Equal(t, "tl1", sc.TeamLeadID)
	})

	t.Run("team lead filtering for another role gets an empty result", func(t *testing.T) {
		sc, err := ForUserList(user.Principal{ID: "tl1", Role: user.RoleTeamLead}, user.RoleEmployee)

		require.NoError(t, err)
		assert.True(t, sc.Empty)
	})

	t.Run("members may not list users", func(t *testing.T) {
		for _, role := range []user.Role{user.RoleEmployee, user.RoleInternee} {
			_, err := ForUserList(user.Principal{ID: "u1", Role: role}, "")
			assert.ErrorIs(t, err, user.ErrAccessDenied)
		}
	})
}

func TestForLeaveAndAttendance(t *testing.T) {
	t.Run("reviewers get system wide visibility", func(t *testing.T) {
		for _, role := range []user.Role{user.RoleAdmin, user.RoleTeamLead} {
			p := user.Principal{ID: "r1", Role: role}

			assert.True(t, ForLeave(p).All)
			assert.True(t, ForAttendance(p).All)
		}
	})

	t.Run("members see only their own records", func(t *testing.T) {
		for _, role := range []user.Role{user.RoleEmployee, user.RoleInternee} {
			p := user.Principal{ID: "u1", Role: role}

			lsc := ForLeave(p)
			assert.True(t, lsc.Allows("u1"))
			assert.False(t, lsc.Allows("u2"))

			asc := ForAttendance(p)
			assert.True(t, asc.Allows("u1"))
			assert.False(t, asc.Allows("u2"))
		}
	})
}

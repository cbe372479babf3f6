package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/validator"
)

func strPtr(s string) *string { return &s }

func validRegister() RegisterRequest {
	return RegisterRequest{
		FirstName:    "Ayesha",
		LastName:     "Khan",
		Email:        "ayesha@example.com",
		Password:     "s3cretpass",
		Phone:        "+923001234567",
		IDCardNumber: "35202-1234567-1",
		Role:         RoleInternee,
		TeamLeadID:   strPtr("tl-1"),
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	t.Run("valid internee registration", func(t *testing.T) {
		req := validRegister()
		assert.NoError(t, req.Validate())
	})

	t.Run("role defaults to internee", func(t *testing.T) {
		req := validRegister()
		req.Role = ""

		require.NoError(t, req.Validate())
		assert.Equal(t, RoleInternee, req.Role)
	})

	t.Run("internee without a team lead is rejected", func(t *testing.T) {
		req := validRegister()
		req.TeamLeadID = nil
		assert.Error(t, req.Validate())

		req = validRegister()
		req.TeamLeadID = strPtr("  ")
		assert.Error(t, req.Validate())
	})

	t.Run("non internee with a team lead is rejected", func(t *testing.T) {
		req := validRegister()
		req.Role = RoleEmployee
		assert.Error(t, req.Validate())
	})

	t.Run("employee without a team lead is valid", func(t *testing.T) {
		req := validRegister()
		req.Role = RoleEmployee
		req.TeamLeadID = nil
		assert.NoError(t, req.Validate())
	})

	t.Run("bad email is rejected", func(t *testing.T) {
		req := validRegister()
		req.Email = "not-an-email"
		assert.Error(t, req.Validate())
	})

	t.Run("short password is rejected", func(t *testing.T) {
		req := validRegister()
		req.Password = "12345"
		assert.Error(t, req.Validate())
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		req := validRegister()
		req.Role = Role("superuser")
		assert.Error(t, req.Validate())
	})

	t.Run("validation errors map by field", func(t *testing.T) {
		req := validRegister()
		req.Email = "nope"
		req.Password = "x"

		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		m := errs.ToMap()
		assert.Contains(t, m, "email")
		assert.Contains(t, m, "password")
	})
}

func TestUpdateRoleRequestValidate(t *testing.T) {
	t.Run("promote to team lead", func(t *testing.T) {
		req := UpdateRoleRequest{Role: RoleTeamLead}
		assert.NoError(t, req.Validate())
	})

	t.Run("demote to internee requires a team lead", func(t *testing.T) {
		req := UpdateRoleRequest{Role: RoleInternee}
		assert.Error(t, req.Validate())

		req.TeamLeadID = strPtr("tl-1")
		assert.NoError(t, req.Validate())
	})
}

func TestListFilterNormalize(t *testing.T) {
	f := ListFilter{}
	f.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 10, f.Limit)

	f = ListFilter{Page: 3, Limit: 50}
	f.Normalize()
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 50, f.Limit)

	f = ListFilter{Page: -1, Limit: 1000}
	f.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 10, f.Limit)
}

func TestToResponseIncludesPictures(t *testing.T) {
	u := User{
		ID:             "u1",
		FirstName:      "Ayesha",
		Role:           RoleEmployee,
		ProfilePicture: strPtr("profiles/u1.png"),
		CoverPhoto:     strPtr("profiles/u1-cover.png"),
		IDCardFrontPic: strPtr("documents/u1-front.png"),
	}

	resp := ToResponse(u)

	require.NotNil(t, resp.CoverPhoto)
	assert.Equal(t, "profiles/u1-cover.png", *resp.CoverPhoto)
	assert.Equal(t, "profiles/u1.png", *resp.ProfilePicture)
	assert.Equal(t, "documents/u1-front.png", *resp.IDCardFrontPic)
	assert.Nil(t, resp.IDCardBackPic)
}

func TestPrincipalHelpers(t *testing.T) {
	assert.True(t, Principal{Role: RoleAdmin}.CanReview())
	assert.True(t, Principal{Role: RoleTeamLead}.CanReview())
	assert.False(t, Principal{Role: RoleEmployee}.CanReview())
	assert.False(t, Principal{Role: RoleInternee}.CanReview())
}

package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"user-profile-service/internal/core/validate"
)

func newUser() *User {
	u := &User{
		Name:   "Ana",
		EmpID:  "1024",
		Email:  "Ana@Example.com",
		Gender: "Female",
	}
	u.SetPassword("secret123")
	return u
}

func fieldsOf(t *testing.T, err error) validate.Errors {
	t.Helper()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "want ValidationError, got %v", err)
	return ve.Fields
}

func TestPrepareWrite_NormalizesAndHashes(t *testing.T) {
	u := newUser()
	require.NoError(t, PrepareWrite(u, true))
	require.Equal(t, "ana@example.com", u.Email)
	require.Equal(t, GenderFemale, u.Gender)
	require.Equal(t, RoleMember, u.Role)
	require.True(t, strings.HasPrefix(u.Password, "$2a$05$"))
	require.False(t, u.PasswordModified())

	ok, err := u.ComparePassword("secret123")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = u.ComparePassword("wrong")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPrepareWrite_UnmodifiedPasswordNotRehashed(t *testing.T) {
	u := newUser()
	require.NoError(t, PrepareWrite(u, true))
	first := u.Password

	require.NoError(t, PrepareWrite(u, false))
	require.NoError(t, PrepareWrite(u, false))
	require.Equal(t, first, u.Password)

	u.SetPassword("another1")
	require.NoError(t, PrepareWrite(u, false))
	require.NotEqual(t, first, u.Password)
}

func TestPrepareWrite_HashFailureKeepsRecordUnhashed(t *testing.T) {
	u := newUser()
	u.SetPassword(strings.Repeat("p", 73))
	err := PrepareWrite(u, true)
	require.Error(t, err)
	require.True(t, u.PasswordModified())
}

func TestValidateUser_Codes(t *testing.T) {
	u := &User{
		Name:       "Ana",
		EmpID:      "12a",
		Email:      "not-an-email",
		Gender:     "robot",
		Role:       "owner",
		URLTwitter: "not-a-url",
		URLGitHub:  "",
		Password:   "x",
	}
	f := fieldsOf(t, ValidateUser(u, true))
	require.Equal(t, validate.Errors{
		"empId":      {CodeEmpIDNotValid},
		"email":      {CodeEmailNotValid},
		"gender":     {CodeGenderNotValid},
		"role":       {CodeRoleNotValid},
		"urlTwitter": {CodeURLNotValid},
	}, f)
}

func TestValidateUser_RequiredFields(t *testing.T) {
	f := fieldsOf(t, ValidateUser(&User{Role: RoleMember}, true))
	for _, k := range []string{"name", "empId", "email", "gender", "password"} {
		require.Equal(t, []string{CodeRequiredMissing}, f[k], k)
	}
}

func TestValidateUser_PasswordOptionalOnUpdate(t *testing.T) {
	u := newUser()
	u.Password = ""
	u.passwordModified = false
	u.Normalize()
	require.NoError(t, ValidateUser(u, false))
}

func TestGender_CaseInsensitive(t *testing.T) {
	u := newUser()
	u.Gender = "Male"
	require.NoError(t, PrepareWrite(u, true))
	require.Equal(t, GenderMale, u.Gender)

	u = newUser()
	u.Gender = "robot"
	f := fieldsOf(t, PrepareWrite(u, true))
	require.Equal(t, []string{CodeGenderNotValid}, f["gender"])
}

func TestURLs_EmptyOrValid(t *testing.T) {
	u := newUser()
	u.URLTwitter = ""
	u.URLGitHub = "HTTPS://GitHub.com/Ana"
	require.NoError(t, PrepareWrite(u, true))
	require.Equal(t, "https://github.com/ana", u.URLGitHub)
}

func TestIsBlocked(t *testing.T) {
	now := time.Now()
	u := &User{BlockExpires: now.Add(time.Hour)}
	require.True(t, u.IsBlocked(now))
	u.BlockExpires = now.Add(-time.Second)
	require.False(t, u.IsBlocked(now))
}

func TestNewPage(t *testing.T) {
	p := NewPage([]int{1, 2}, 25, 2, 10)
	require.Equal(t, 3, p.TotalPages)
	require.Equal(t, 11, p.PagingCounter)
	require.True(t, p.HasPrevPage)
	require.True(t, p.HasNextPage)
	require.Equal(t, 1, *p.PrevPage)
	require.Equal(t, 3, *p.NextPage)

	empty := NewPage[int](nil, 0, 1, 10)
	require.Equal(t, 1, empty.TotalPages)
	require.NotNil(t, empty.Docs)
	require.Nil(t, empty.PrevPage)
	require.Nil(t, empty.NextPage)
}

func TestListQueryNormalize(t *testing.T) {
	q, col, desc := ListQuery{Page: 0, Limit: 500, Sort: "password"}.Normalize()
	require.Equal(t, 1, q.Page)
	require.Equal(t, DefaultPageLimit, q.Limit)
	require.Equal(t, "created_at", col)
	require.True(t, desc)

	_, col, desc = ListQuery{Sort: "name", Order: "asc"}.Normalize()
	require.Equal(t, "name", col)
	require.False(t, desc)
}

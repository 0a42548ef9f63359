package user

import (
	"testing"

	"github.com/stretchr/testify/require"

	v "user-profile-service/internal/core/validate"
)

func validProfile() v.Body {
	return v.Body{
		"id":         "u1",
		"city":       "Porto",
		"country":    "Portugal",
		"firstname":  "Ana",
		"postalCode": "4000",
	}
}

func TestUpdateProfile_Valid(t *testing.T) {
	require.Empty(t, UpdateProfileRules.Validate(validProfile()))
}

func TestUpdateProfile_MissingRequired(t *testing.T) {
	for _, f := range []string{"city", "country", "firstname", "postalCode", "id"} {
		b := validProfile()
		delete(b, f)
		errs := UpdateProfileRules.Validate(b)
		require.Equal(t, v.Errors{f: {v.CodeMissing}}, errs, f)
	}
}

func TestUpdateProfile_EmptyRequired(t *testing.T) {
	for _, f := range []string{"city", "country", "firstname", "postalCode", "id"} {
		for _, empty := range []string{"", "   "} {
			b := validProfile()
			b[f] = empty
			errs := UpdateProfileRules.Validate(b)
			require.Equal(t, v.Errors{f: {v.CodeIsEmpty}}, errs, f)
		}
	}
}

func TestUpdateProfile_EmptyBodyReportsEveryRequiredField(t *testing.T) {
	errs := UpdateProfileRules.Validate(v.Body{})
	require.Len(t, errs, 5)
	for _, f := range []string{"city", "country", "firstname", "postalCode", "id"} {
		require.Equal(t, []string{v.CodeMissing}, errs[f])
	}
}

func TestUpdateProfile_URLs(t *testing.T) {
	b := validProfile()
	b["urlTwitter"] = ""
	b["urlGitHub"] = ""
	require.Empty(t, UpdateProfileRules.Validate(b))

	b = validProfile()
	b["urlTwitter"] = "not-a-url"
	require.Equal(t, v.Errors{"urlTwitter": {v.CodeNotAValidURL}}, UpdateProfileRules.Validate(b))

	b = validProfile()
	b["urlTwitter"] = "https://example.com"
	b["urlGitHub"] = "https://github.com/ana"
	require.Empty(t, UpdateProfileRules.Validate(b))
}

func TestUpdateProfile_TrimsValues(t *testing.T) {
	b := validProfile()
	b["city"] = "  Porto "
	b["lastname"] = " Silva "
	b["aboutMe"] = "\thi\n"
	require.Empty(t, UpdateProfileRules.Validate(b))
	require.Equal(t, "Porto", b["city"])
	require.Equal(t, "Silva", b["lastname"])
	require.Equal(t, "hi", b["aboutMe"])
}

func TestUpdateProfile_NumericPostalCode(t *testing.T) {
	b := validProfile()
	b["postalCode"] = 4000.0
	require.Empty(t, UpdateProfileRules.Validate(b))
}

func TestChangePassword(t *testing.T) {
	require.Empty(t, ChangePasswordRules.Validate(v.Body{}))
	require.Empty(t, ChangePasswordRules.Validate(v.Body{"newPassword": "secret123"}))
	require.Empty(t, ChangePasswordRules.Validate(v.Body{"oldPassword": "abcde", "newPassword": "abcde"}))

	errs := ChangePasswordRules.Validate(v.Body{"oldPassword": "ab12", "newPassword": "ab12"})
	require.Equal(t, v.Errors{
		"oldPassword": {CodePasswordTooShort},
		"newPassword": {CodePasswordTooShort},
	}, errs)

	errs = ChangePasswordRules.Validate(v.Body{"oldPassword": ""})
	require.Equal(t, v.Errors{"oldPassword": {v.CodeIsEmpty}}, errs)
}

func TestVerify(t *testing.T) {
	require.Equal(t, v.Errors{"id": {v.CodeMissing}}, VerifyRules.Validate(v.Body{}))
	require.Equal(t, v.Errors{"id": {v.CodeIsEmpty}}, VerifyRules.Validate(v.Body{"id": ""}))
	require.Empty(t, VerifyRules.Validate(v.Body{"id": "3f1c"}))
}

func TestRegister(t *testing.T) {
	errs := RegisterRules.Validate(v.Body{"name": "Ana", "email": "a@b.co", "gender": "female", "password": "abc"})
	require.Equal(t, v.Errors{
		"empId":    {v.CodeMissing},
		"password": {CodePasswordTooShort},
	}, errs)
}

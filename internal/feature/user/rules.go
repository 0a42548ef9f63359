package user

import v "user-profile-service/internal/core/validate"

const CodePasswordTooShort = "PASSWORD_TOO_SHORT_MIN_5"

// UpdateProfileRules PATCH /profile
var UpdateProfileRules = v.RuleSet{
	v.Required("city", v.NotEmpty, v.Trim),
	v.Required("country", v.NotEmpty, v.Trim),
	v.Required("firstname", v.NotEmpty, v.Trim),
	v.Optional("lastname", v.Trim),
	v.Optional("address", v.Trim),
	v.Required("postalCode", v.NotEmpty, v.Trim),
	v.Optional("aboutMe", v.Trim),
	v.Optional("urlTwitter", v.URLOrEmpty),
	v.Optional("urlGitHub", v.URLOrEmpty),
	v.Required("id", v.NotEmpty),
}

// ChangePasswordRules 两个字段都可选，也不要求成对出现
var ChangePasswordRules = v.RuleSet{
	v.Optional("oldPassword", v.NotEmpty, v.MinLength(5, CodePasswordTooShort)),
	v.Optional("newPassword", v.NotEmpty, v.MinLength(5, CodePasswordTooShort)),
}

// VerifyRules POST /verify，id 为验证令牌
var VerifyRules = v.RuleSet{
	v.Required("id", v.NotEmpty),
}

// RegisterRules POST /auth/register
var RegisterRules = v.RuleSet{
	v.Required("name", v.NotEmpty, v.Trim),
	v.Required("empId", v.NotEmpty, v.Trim),
	v.Required("email", v.NotEmpty, v.Trim),
	v.Required("gender", v.NotEmpty, v.Trim),
	v.Required("password", v.NotEmpty, v.MinLength(5, CodePasswordTooShort)),
}

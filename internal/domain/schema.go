package domain

import (
	"fmt"
	"slices"
	"strings"

	"user-profile-service/internal/core/validate"
	"user-profile-service/pkg/utils"
)

// 模型层错误码
const (
	CodeEmpIDNotValid   = "EMP_ID_NOT_VALID"
	CodeEmailNotValid   = "EMAIL_IS_NOT_VALID"
	CodeGenderNotValid  = "NOT_A_VALID_GENDER"
	CodeRoleNotValid    = "NOT_A_VALID_ROLE"
	CodeURLNotValid     = validate.CodeNotAValidURL
	CodeRequiredMissing = validate.CodeMissing
)

// Normalize 小写化 email/gender/url，补默认角色
func (u *User) Normalize() {
	u.Email = strings.ToLower(u.Email)
	u.Gender = strings.ToLower(u.Gender)
	u.URLTwitter = strings.ToLower(u.URLTwitter)
	u.URLGitHub = strings.ToLower(u.URLGitHub)
	if u.Role == "" {
		u.Role = RoleMember
	}
}

// ValidateUser 纯函数，不依赖存储；isNew 时密码必填
func ValidateUser(u *User, isNew bool) error {
	errs := validate.Errors{}
	if u.Name == "" {
		errs.Add("name", CodeRequiredMissing)
	}
	switch {
	case u.EmpID == "":
		errs.Add("empId", CodeRequiredMissing)
	case !utils.IsNumeric(u.EmpID):
		errs.Add("empId", CodeEmpIDNotValid)
	}
	switch {
	case u.Email == "":
		errs.Add("email", CodeRequiredMissing)
	case !utils.IsEmail(u.Email):
		errs.Add("email", CodeEmailNotValid)
	}
	switch {
	case u.Gender == "":
		errs.Add("gender", CodeRequiredMissing)
	case !utils.IsIn(u.Gender, Genders):
		errs.Add("gender", CodeGenderNotValid)
	}
	if (isNew || u.passwordModified) && u.Password == "" {
		errs.Add("password", CodeRequiredMissing)
	}
	if !slices.Contains(AllRoles(), u.Role) {
		errs.Add("role", CodeRoleNotValid)
	}
	if !utils.IsURLOrEmpty(u.URLTwitter) {
		errs.Add("urlTwitter", CodeURLNotValid)
	}
	if !utils.IsURLOrEmpty(u.URLGitHub) {
		errs.Add("urlGitHub", CodeURLNotValid)
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// HashPasswordIfModified 密码未改动时什么都不做；失败时保持标记，调用方必须放弃本次写入
func HashPasswordIfModified(u *User) error {
	if !u.passwordModified {
		return nil
	}
	h, err := utils.HashPassword(u.Password, PasswordCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.Password = h
	u.passwordModified = false
	return nil
}

// PrepareWrite 每次写库前由仓储显式调用：规范化 -> 校验 -> 按需哈希
func PrepareWrite(u *User, isNew bool) error {
	if isNew && u.Password != "" {
		u.passwordModified = true
	}
	u.Normalize()
	if err := ValidateUser(u, isNew); err != nil {
		return err
	}
	return HashPasswordIfModified(u)
}

package domain

import (
	"context"
	"time"

	"gorm.io/gorm"

	"user-profile-service/pkg/utils"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// AllRoles 角色白名单
func AllRoles() []string { return []string{RoleAdmin, RoleMember} }

const (
	GenderMale        = "male"
	GenderFemale      = "female"
	GenderTransgender = "transgender"
)

var Genders = []string{GenderMale, GenderFemale, GenderTransgender}

// PasswordCost bcrypt 成本因子（固定）
const PasswordCost = 5

// SecretColumns 默认查询不返回的列
var SecretColumns = []string{"password", "login_attempts", "block_expires"}

type User struct {
	ID            string         `gorm:"primaryKey;size:32" json:"id"`
	Name          string         `gorm:"size:128;not null" json:"name"`
	Firstname     string         `gorm:"size:128" json:"firstname"`
	Lastname      string         `gorm:"size:128" json:"lastname"`
	Address       string         `gorm:"size:255" json:"address"`
	EmpID         string         `gorm:"column:emp_id;size:32;not null" json:"empId"`
	Email         string         `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Gender        string         `gorm:"size:16;not null" json:"gender"`
	Password      string         `gorm:"size:100;not null" json:"-"`
	Role          string         `gorm:"size:16;not null;default:member" json:"role"`
	Verification  string         `gorm:"size:64;index" json:"-"`
	Verified      bool           `gorm:"not null;default:false" json:"verified"`
	Phone         string         `gorm:"size:32" json:"phone"`
	City          string         `gorm:"size:128" json:"city"`
	Country       string         `gorm:"size:128" json:"country"`
	DOB           *time.Time     `gorm:"column:dob" json:"dob,omitempty"`
	PostalCode    *int64         `json:"postalCode,omitempty"`
	URLTwitter    string         `gorm:"column:url_twitter;size:255" json:"urlTwitter"`
	URLGitHub     string         `gorm:"column:url_github;size:255" json:"urlGitHub"`
	LoginAttempts int            `gorm:"not null;default:0" json:"-"`
	BlockExpires  time.Time      `json:"-"`
	Avatar        []byte         `json:"avatar,omitempty"`
	AboutMe       string         `gorm:"type:text" json:"aboutMe"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	passwordModified bool
}

func (User) TableName() string { return "users" }

// SetPassword 写入明文并标记为已修改，下一次写库前会被哈希
func (u *User) SetPassword(plain string) {
	u.Password = plain
	u.passwordModified = true
}

func (u *User) PasswordModified() bool { return u.passwordModified }

// ComparePassword 需要带密码列加载的记录
func (u *User) ComparePassword(attempt string) (bool, error) {
	return utils.CheckPassword(attempt, u.Password)
}

func (u *User) IsBlocked(now time.Time) bool { return u.BlockExpires.After(now) }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByIDWithSecrets(ctx context.Context, id string) (*User, error)
	FindByEmailWithSecrets(ctx context.Context, email string) (*User, error)
	FindUnverifiedByToken(ctx context.Context, token string) (*User, error)
	List(ctx context.Context, q ListQuery) (*Page[User], error)
	Update(ctx context.Context, u *User) error
	SaveLoginState(ctx context.Context, u *User) error
	SoftDelete(ctx context.Context, id string) error
}

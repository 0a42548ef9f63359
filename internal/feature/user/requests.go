package user

// UpdateProfileRequest 只包含规则里声明过的字段；指针字段为 nil 表示未提交
type UpdateProfileRequest struct {
	ID         string  `json:"id"`
	Firstname  string  `json:"firstname"`
	Lastname   *string `json:"lastname"`
	Address    *string `json:"address"`
	City       string  `json:"city"`
	Country    string  `json:"country"`
	PostalCode int64   `json:"postalCode"`
	AboutMe    *string `json:"aboutMe"`
	URLTwitter *string `json:"urlTwitter"`
	URLGitHub  *string `json:"urlGitHub"`
}

type ChangePasswordRequest struct {
	OldPassword *string `json:"oldPassword"`
	NewPassword *string `json:"newPassword"`
}

type VerifyRequest struct {
	ID string `json:"id"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	EmpID    string `json:"empId"`
	Email    string `json:"email"`
	Gender   string `json:"gender"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

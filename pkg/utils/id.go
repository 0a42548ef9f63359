package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID 32 位无横杠 ID
func NewID() string { return strings.ReplaceAll(uuid.NewString(), "-", "") }

// NewToken 邮箱验证等一次性令牌
func NewToken() string { return uuid.NewString() }

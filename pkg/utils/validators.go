package utils

import (
	"net/url"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// 请求层与模型层共用同一套语法校验
var v = validator.New()

func IsEmail(s string) bool { return v.Var(s, "required,email") == nil }

// IsNumeric 允许符号与小数：-12、+3、4.5
func IsNumeric(s string) bool { return v.Var(s, "required,numeric") == nil }

func IsIn(s string, set []string) bool { return slices.Contains(set, s) }

// IsURL 协议可省略（按 http 处理），仅允许 http/https/ftp，主机必须带顶级域名或为 IP
func IsURL(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	raw := s
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	if v.Var(raw, "url") != nil {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ftp":
	default:
		return false
	}
	host := u.Hostname()
	return v.Var(host, "fqdn") == nil || v.Var(host, "ip") == nil
}

// IsURLOrEmpty 空串视为合法
func IsURLOrEmpty(s string) bool { return s == "" || IsURL(s) }

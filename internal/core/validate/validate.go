// Package validate 请求体字段校验：每个字段一条有序检查链，
// 字段内首个失败即停止，所有字段都会被检查，错误按字段汇总。
package validate

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"user-profile-service/pkg/utils"
)

// 通用错误码（对外稳定，不做翻译）
const (
	CodeMissing      = "MISSING"
	CodeIsEmpty      = "IS_EMPTY"
	CodeNotAValidURL = "NOT_A_VALID_URL"
)

// Body 原始 JSON 请求体
type Body map[string]any

// Errors 字段 -> 错误码列表
type Errors map[string][]string

func (e Errors) Add(field, code string) { e[field] = append(e[field], code) }

func (e Errors) Merge(o Errors) {
	for f, codes := range o {
		e[f] = append(e[f], codes...)
	}
}

func (e Errors) String() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+"="+strings.Join(e[f], ","))
	}
	return strings.Join(parts, "; ")
}

type FieldError struct {
	Field string
	Code  string
}

// Step 处理一个字段值：返回（可能被规范化的）新值；code 非空表示失败
type Step func(v string) (out string, code string)

// Rule 校验整个请求体，允许就地规范化
type Rule func(b Body) []FieldError

// RuleSet 按声明顺序执行的一组规则
type RuleSet []Rule

func (rs RuleSet) Validate(b Body) Errors {
	errs := Errors{}
	for _, r := range rs {
		for _, fe := range r(b) {
			errs.Add(fe.Field, fe.Code)
		}
	}
	return errs
}

// Required 字段必须存在（键缺失报 MISSING），随后执行 steps
func Required(field string, steps ...Step) Rule {
	return func(b Body) []FieldError {
		raw, ok := b[field]
		if !ok {
			return []FieldError{{Field: field, Code: CodeMissing}}
		}
		return run(b, field, raw, steps)
	}
}

// Optional 字段缺失时跳过；存在则执行 steps
func Optional(field string, steps ...Step) Rule {
	return func(b Body) []FieldError {
		raw, ok := b[field]
		if !ok {
			return nil
		}
		return run(b, field, raw, steps)
	}
}

func run(b Body, field string, raw any, steps []Step) []FieldError {
	in := Stringify(raw)
	v := in
	for _, s := range steps {
		out, code := s(v)
		if code != "" {
			return []FieldError{{Field: field, Code: code}}
		}
		v = out
	}
	if _, isStr := raw.(string); isStr && v != in {
		b[field] = v
	}
	return nil
}

// Stringify JSON 值转字符串；null -> ""
func Stringify(raw any) string {
	switch x := raw.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// Trim 去除首尾空白并写回请求体
func Trim(v string) (string, string) { return strings.TrimSpace(v), "" }

// NotEmpty 空串或纯空白 -> IS_EMPTY
func NotEmpty(v string) (string, string) {
	if strings.TrimSpace(v) == "" {
		return v, CodeIsEmpty
	}
	return v, ""
}

// URLOrEmpty 空串合法，否则必须是 URL
func URLOrEmpty(v string) (string, string) {
	if !utils.IsURLOrEmpty(v) {
		return v, CodeNotAValidURL
	}
	return v, ""
}

// MinLength 按字符计数
func MinLength(n int, code string) Step {
	return func(v string) (string, string) {
		if utf8.RuneCountInString(v) < n {
			return v, code
		}
		return v, ""
	}
}

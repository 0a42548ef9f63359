package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	h, err := HashPassword("secret123", 5)
	require.NoError(t, err)
	require.NotEqual(t, "secret123", h)

	cost, err := bcrypt.Cost([]byte(h))
	require.NoError(t, err)
	require.Equal(t, 5, cost)

	ok, err := CheckPassword("secret123", h)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = CheckPassword("wrong", h)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPassword_FreshSalt(t *testing.T) {
	a, err := HashPassword("secret123", 5)
	require.NoError(t, err)
	b, err := HashPassword("secret123", 5)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestHashPassword_Failure(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", 80), 5)
	require.Error(t, err)
}

func TestCheckPassword_CorruptHash(t *testing.T) {
	_, err := CheckPassword("secret123", "not-a-hash")
	require.Error(t, err)
}

func TestIsURL(t *testing.T) {
	cases := map[string]bool{
		"https://example.com":       true,
		"http://github.com/someone": true,
		"example.com":               true,
		"twitter.com/someone":       true,
		"ftp://files.example.org/a": true,
		"http://127.0.0.1:8080/x":   true,
		"not-a-url":                 false,
		"http://localhost":          false,
		"javascript:alert(1)":       false,
		"https://exa mple.com":      false,
		"":                          false,
	}
	for in, want := range cases {
		require.Equal(t, want, IsURL(in), in)
	}
	require.True(t, IsURLOrEmpty(""))
}

func TestIsNumericAndEmail(t *testing.T) {
	require.True(t, IsNumeric("1024"))
	require.True(t, IsNumeric("-7"))
	require.False(t, IsNumeric("12a"))
	require.False(t, IsNumeric(""))

	require.True(t, IsEmail("someone@example.com"))
	require.False(t, IsEmail("someone@"))
	require.False(t, IsEmail(""))
}

func TestNewID(t *testing.T) {
	id := NewID()
	require.Len(t, id, 32)
	require.NotEqual(t, id, NewID())
}

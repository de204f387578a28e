package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/zhangxy/bookshop/pkg/errors"
)

// TestGenerateAndParse 测试Token生成与解析回路
func TestGenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 7*24*time.Hour)

	pair, err := m.GenerateToken(42, "admin@example.com", "管理员", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(3600), pair.ExpiresIn)

	claims, err := m.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role, "角色必须写入Claims，管理端鉴权依赖它")
}

// TestParseToken_Expired 过期Token返回ErrTokenExpired
func TestParseToken_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, 7*24*time.Hour)

	pair, err := m.GenerateToken(1, "user@example.com", "用户", "user")
	require.NoError(t, err)

	_, err = m.ParseToken(pair.AccessToken)
	assert.Equal(t, apperrors.ErrTokenExpired, err)
}

// TestParseToken_WrongSecret 密钥不匹配返回ErrInvalidToken
func TestParseToken_WrongSecret(t *testing.T) {
	m := NewManager("secret-a", time.Hour, 7*24*time.Hour)
	other := NewManager("secret-b", time.Hour, 7*24*time.Hour)

	pair, err := m.GenerateToken(1, "user@example.com", "用户", "user")
	require.NoError(t, err)

	_, err = other.ParseToken(pair.AccessToken)
	assert.Equal(t, apperrors.ErrInvalidToken, err)
}

// TestRefreshAccessToken 刷新后的Access Token保留身份与角色
func TestRefreshAccessToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 7*24*time.Hour)

	pair, err := m.GenerateToken(42, "admin@example.com", "管理员", "admin")
	require.NoError(t, err)

	newAccess, err := m.RefreshAccessToken(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := m.ParseToken(newAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	// 垃圾字符串无法刷新
	_, err = m.RefreshAccessToken("not-a-token")
	assert.Equal(t, apperrors.ErrInvalidToken, err)
}

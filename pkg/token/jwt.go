// Package token 提供了用于生成和验证 JSON Web Tokens (JWT) 的功能。
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager 负责管理 JWT 的生成和验证。
type JWTManager struct {
	secretKey       []byte        // secretKey 用于签名和验证 token 的密钥
	visitorTokenDur time.Duration // visitorTokenDur 定义了访客 token 的有效期
	adminTokenDur   time.Duration // adminTokenDur 定义了管理员 token 的有效期
}

// CustomClaims 定义了我们想要在 JWT 中存储的自定义数据。
// 访客 token 携带 type/userId/sessionId，管理员 token 额外携带 role。
type CustomClaims struct {
	Type      string `json:"type,omitempty"`
	UserID    string `json:"userId,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// NewJWTManager 创建一个新的 JWTManager 实例。
// secret: 用于签名的密钥字符串。
// visitorExpireMinutes: 访客 token 的过期时间（分钟）。
// adminExpireHours: 管理员 token 的过期时间（小时）。
func NewJWTManager(secret string, visitorExpireMinutes, adminExpireHours int) *JWTManager {
	return &JWTManager{
		secretKey:       []byte(secret),
		visitorTokenDur: time.Duration(visitorExpireMinutes) * time.Minute,
		adminTokenDur:   time.Duration(adminExpireHours) * time.Hour,
	}
}

// GenerateVisitorToken 为一次前端会话签发短期访客 token。
// typ 默认 "anonymous"，userID 和 sessionID 由前端自愿提供。
func (m *JWTManager) GenerateVisitorToken(typ, userID, sessionID string) (string, error) {
	if typ == "" {
		typ = "anonymous"
	}
	claims := CustomClaims{
		Type:      typ,
		UserID:    userID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.visitorTokenDur)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// GenerateAdminToken 为管理员登录签发带 role 声明的 token。
func (m *JWTManager) GenerateAdminToken(username string) (string, error) {
	claims := CustomClaims{
		Role: "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.adminTokenDur)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// VerifyToken 验证给定的 token 字符串。
// 如果 token 有效，它会返回 CustomClaims 对象。
// 如果 token 无效（例如，签名不匹配或已过期），则返回错误。
func (m *JWTManager) VerifyToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 检查签名方法是否为 HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity datos del usuario que viajan en el token.
// BranchID nil significa acceso a toda la empresa.
type Identity struct {
	UserID       string
	EnterpriseID int64
	BranchID     *int64
	Role         string // "Admin" | "Staff"
}

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Se añade Role para que el middleware RBAC pueda tomar decisiones sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string `json:"user_id"`
	EnterpriseID int64  `json:"enterprise_id"`
	BranchID     *int64 `json:"branch_id,omitempty"`
	Role         string `json:"role"`
}

// Identity devuelve la identidad contenida en los claims.
func (c *Claims) Identity() Identity {
	return Identity{UserID: c.UserID, EnterpriseID: c.EnterpriseID, BranchID: c.BranchID, Role: c.Role}
}

// Generate genera un token JWT firmado con la identidad dada.
func Generate(secret string, id Identity, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	if id.EnterpriseID <= 0 {
		return "", fmt.Errorf("jwt: enterprise_id requerido")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:       id.UserID,
		EnterpriseID: id.EnterpriseID,
		BranchID:     id.BranchID,
		Role:         id.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve la identidad.
// Retorna error si el token es inválido, expirado, tiene firma incorrecta o no trae empresa.
func Parse(secret, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("claims inválidos")
	}
	if claims.EnterpriseID <= 0 {
		return Identity{}, fmt.Errorf("claims sin enterprise_id")
	}
	return claims.Identity(), nil
}

package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Role determines which companies' records a caller may see.
type Role string

const (
	RoleGC           Role = "gc"
	RoleFinanceYouth Role = "finance_youth"
	RoleFinanceCore  Role = "finance_core"
	RoleViewer       Role = "viewer"
)

// Claims carried by the identity provider's RS256 tokens.
// The panel only validates and extracts; tokens are issued elsewhere.
type Claims struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
	jwt.RegisteredClaims
}

package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/xela07ax/gcfin-panel/internal/domain"
)

func newKeyPair(t *testing.T) (*rsa.PrivateKey, *BaseValidator) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key, NewBaseValidator(&key.PublicKey)
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims domain.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestVerifyTokenValid(t *testing.T) {
	t.Parallel()

	key, v := newKeyPair(t)
	token := signToken(t, key, domain.Claims{
		Email: "gc@empresa.com",
		Role:  domain.RoleGC,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := v.VerifyToken("Bearer " + token)
	if err != nil {
		t.Fatalf("VerifyToken() error: %v", err)
	}
	if claims.Email != "gc@empresa.com" || claims.Role != domain.RoleGC {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	t.Parallel()

	key, v := newKeyPair(t)
	token := signToken(t, key, domain.Claims{
		Email: "gc@empresa.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	if _, err := v.VerifyToken("Bearer " + token); err == nil {
		t.Fatalf("expired token accepted")
	}
}

func TestVerifyTokenWrongKey(t *testing.T) {
	t.Parallel()

	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	_, v := newKeyPair(t)
	token := signToken(t, otherKey, domain.Claims{Email: "gc@empresa.com"})

	if _, err := v.VerifyToken("Bearer " + token); err == nil {
		t.Fatalf("token signed with a foreign key accepted")
	}
}

func TestVerifyTokenWrongMethod(t *testing.T) {
	t.Parallel()

	_, v := newKeyPair(t)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.Claims{Email: "gc@empresa.com"}).
		SignedString([]byte("shared-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := v.VerifyToken("Bearer " + token); err == nil {
		t.Fatalf("HS256 token accepted by RS256 validator")
	}
}

func TestVerifyTokenRequiresEmail(t *testing.T) {
	t.Parallel()

	key, v := newKeyPair(t)
	token := signToken(t, key, domain.Claims{Role: domain.RoleGC})

	if _, err := v.VerifyToken("Bearer " + token); err == nil {
		t.Fatalf("token without identity accepted")
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	t.Parallel()

	_, v := newKeyPair(t)
	if _, err := v.VerifyToken("Bearer not.a.token"); err == nil {
		t.Fatalf("garbage token accepted")
	}
}

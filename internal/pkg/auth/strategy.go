package auth

import (
	"time"

	"github.com/nross83/storefront/internal/domain/model"
)

// Claims is the signed content of an auth token.
type Claims struct {
	UserID int64
	Role   model.Role
}

type Strategy interface {
	IssueToken(claims Claims) (string, error)
	ParseToken(token string) (Claims, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}

package types

import "github.com/google/uuid"

// TokenClaims carries the identity extracted from a validated session token.
type TokenClaims struct {
	UserID  uuid.UUID
	TokenID string
}

package auth

import "time"

// Credentials holds the signing secret and session lifetime.
type Credentials struct {
	secret   []byte
	validity time.Duration
}

func NewCredentials(secret string, validity time.Duration) *Credentials {
	return &Credentials{secret: []byte(secret), validity: validity}
}

// Issue returns a session token for userID.
func (c *Credentials) Issue(userID string) (string, error) {
	return GenerateToken(userID, c.secret, c.validity)
}

// Verify returns the user id carried by token.
func (c *Credentials) Verify(token string) (string, error) {
	return GetUserIDFromToken(token, c.secret)
}

// Validity is the session lifetime, also used as the cookie Max-Age.
func (c *Credentials) Validity() time.Duration {
	return c.validity
}

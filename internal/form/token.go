package form

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid form token")

// Tokens issues per-render build ids and HMAC tokens binding them to a form id.
type Tokens struct {
	secret []byte
}

// NewTokens uses secret, or a random one when secret is empty (tokens then
// do not survive a restart).
func NewTokens(secret string) (*Tokens, error) {
	if secret != "" {
		return &Tokens{secret: []byte(secret)}, nil
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate form secret: %w", err)
	}
	return &Tokens{secret: buf}, nil
}

// Issue returns a fresh build id and its token.
func (t *Tokens) Issue(formID string) (buildID, token string) {
	buildID = "form-" + uuid.NewString()
	return buildID, t.sign(formID, buildID)
}

// Verify checks token against formID and buildID.
func (t *Tokens) Verify(formID, buildID, token string) error {
	if buildID == "" || token == "" {
		return ErrInvalidToken
	}
	if _, err := uuid.Parse(trimBuildPrefix(buildID)); err != nil {
		return ErrInvalidToken
	}
	want := t.sign(formID, buildID)
	if !hmac.Equal([]byte(want), []byte(token)) {
		return ErrInvalidToken
	}
	return nil
}

func (t *Tokens) sign(formID, buildID string) string {
	mac := hmac.New(sha256.New, t.secret)
	mac.Write([]byte(formID))
	mac.Write([]byte{0})
	mac.Write([]byte(buildID))
	return hex.EncodeToString(mac.Sum(nil))
}

func trimBuildPrefix(buildID string) string {
	const prefix = "form-"
	if len(buildID) > len(prefix) && buildID[:len(prefix)] == prefix {
		return buildID[len(prefix):]
	}
	return buildID
}

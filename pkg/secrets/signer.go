package secrets

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/imagekit-tools/cli/internal/api"
)

// DefaultGrantTTL is how long a self-signed grant stays valid.
const DefaultGrantTTL = 30 * time.Minute

// Signer issues auth grants locally from the account private key instead of
// calling the backend endpoint. The signature is HMAC-SHA1 over token+expire,
// matching what the hosted service verifies.
type Signer struct {
	privateKey string
	ttl        time.Duration
	now        func() time.Time
}

// NewSigner creates a Signer for the given private key.
func NewSigner(privateKey string) (*Signer, error) {
	if privateKey == "" {
		return nil, fmt.Errorf("private key is empty")
	}
	return &Signer{
		privateKey: privateKey,
		ttl:        DefaultGrantTTL,
		now:        time.Now,
	}, nil
}

// GetAuthGrant signs a fresh single-use grant.
func (s *Signer) GetAuthGrant(_ context.Context) (*api.AuthGrant, error) {
	token := uuid.NewString()
	expire := s.now().Add(s.ttl).Unix()

	mac := hmac.New(sha1.New, []byte(s.privateKey))
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))

	return &api.AuthGrant{
		Token:     token,
		Expire:    expire,
		Signature: hex.EncodeToString(mac.Sum(nil)),
	}, nil
}

package cryptox

import (
	"crypto/sha512"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pinkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

// HashAlgorithm selects how PINs are hashed.
type HashAlgorithm string

const (
	// SHA512 hashes salt || pin with SHA-512.
	SHA512 HashAlgorithm = "sha512"
	// Argon2ID stretches the pin with argon2id keyed by the salt.
	Argon2ID HashAlgorithm = "argon2id"
)

// DefaultSaltSize is the number of random bytes in a generated salt.
const DefaultSaltSize = 128

const argon2PinHashSize = 64

var (
	ErrEmptySalt          = errors.New("empty salt")
	ErrUnsupportedHashAlg = errors.New("unsupported hash algorithm")
)

// Valid reports whether a is a known algorithm.
func (a HashAlgorithm) Valid() bool {
	return a == SHA512 || a == Argon2ID
}

// Provider generates salts, hashes PINs and reads token subjects.
// It holds no mutable state and is safe for concurrent use.
type Provider struct {
	saltSize  int
	algorithm HashAlgorithm
}

type Option func(*Provider)

func WithSaltSize(n int) Option {
	return func(p *Provider) { p.saltSize = n }
}

func WithHashAlgorithm(a HashAlgorithm) Option {
	return func(p *Provider) { p.algorithm = a }
}

func NewProvider(opts ...Option) *Provider {
	p := &Provider{saltSize: DefaultSaltSize, algorithm: SHA512}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GenerateSalt returns a fresh random salt.
func (p *Provider) GenerateSalt() ([]byte, error) {
	if p.saltSize <= 0 {
		return nil, fmt.Errorf("invalid salt size %d", p.saltSize)
	}
	return common.GenerateRandByteArray(p.saltSize)
}

// HashPin returns the base64 (standard encoding) digest of pin keyed by salt.
// The result depends only on salt, pin and the configured algorithm.
func (p *Provider) HashPin(salt []byte, pin string) (string, error) {
	if len(salt) == 0 {
		return "", ErrEmptySalt
	}

	var digest []byte
	switch p.algorithm {
	case SHA512:
		h := sha512.New()
		h.Write(salt)
		h.Write([]byte(pin))
		digest = h.Sum(nil)
	case Argon2ID:
		digest = argon2.IDKey([]byte(pin), salt, 1, 64*1024, 4, argon2PinHashSize)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedHashAlg, p.algorithm)
	}
	defer common.WipeByteArray(digest)

	return base64.StdEncoding.EncodeToString(digest), nil
}

package util

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Stored password format: pbkdf2_sha256$<iterations>$<salt-hex>$<dk-hex>.
// Self-describing, so verification needs nothing beyond the stored string.
const passwordAlgo = "pbkdf2_sha256"

const (
	saltLen      = 16
	derivedIters = 310_000 // default when the caller passes <= 0
	keyLen       = 32
	tokenBytes   = 32
)

// HashPassword derives a salted PBKDF2-SHA256 hash of password+pepper and
// returns it in the self-describing stored format.
func HashPassword(password, pepper string, iterations int) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password is empty")
	}
	if iterations <= 0 {
		iterations = derivedIters
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	dk := pbkdf2.Key([]byte(password+pepper), salt, iterations, keyLen, sha256.New)
	return fmt.Sprintf("%s$%d$%s$%s",
		passwordAlgo, iterations, hex.EncodeToString(salt), hex.EncodeToString(dk)), nil
}

// CheckPassword re-derives the key with the salt and iteration count carried
// by the encoded string and compares in constant time. Any parse failure
// returns false; nothing raises across the auth boundary.
func CheckPassword(password, pepper, encoded string) bool {
	if password == "" || encoded == "" {
		return false
	}

	parts := strings.SplitN(encoded, "$", 4)
	if len(parts) != 4 || parts[0] != passwordAlgo {
		return false
	}
	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false
	}
	salt, err := hex.DecodeString(parts[2])
	if err != nil {
		return false
	}
	expected, err := hex.DecodeString(parts[3])
	if err != nil || len(expected) == 0 {
		return false
	}

	dk := pbkdf2.Key([]byte(password+pepper), salt, iterations, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(dk, expected) == 1
}

// NewSessionToken returns a cryptographically random URL-safe token.
// The raw token is handed to the caller exactly once; only its hash
// is ever persisted.
func NewSessionToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashToken is the deterministic one-way digest used to look sessions up
// without retaining secrets at rest.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

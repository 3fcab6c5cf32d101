package service

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

// legacyDefaultIterations applies to "pbkdf2:<hash>" hashes that carry no
// iteration count.
const legacyDefaultIterations = 600000

// maxPasswordBytes is bcrypt's input limit. It counts bytes, not characters.
const maxPasswordBytes = 72

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// checkPassword verifies a plaintext password against a stored hash. New
// accounts use bcrypt; accounts imported from the previous storefront carry
// salted PBKDF2 hashes in the "pbkdf2:sha256:<iter>$<salt>$<hex>" format.
func checkPassword(encoded, password string) bool {
	if strings.HasPrefix(encoded, "pbkdf2:") {
		return checkLegacyPBKDF2(encoded, password)
	}
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
}

func checkLegacyPBKDF2(encoded, password string) bool {
	method, rest, ok := strings.Cut(encoded, "$")
	if !ok {
		return false
	}
	salt, hexDigest, ok := strings.Cut(rest, "$")
	if !ok || salt == "" {
		return false
	}
	want, err := hex.DecodeString(hexDigest)
	if err != nil || len(want) == 0 {
		return false
	}

	parts := strings.Split(method, ":")
	if len(parts) < 2 {
		return false
	}
	var h func() hash.Hash
	switch parts[1] {
	case "sha256":
		h = sha256.New
	case "sha512":
		h = sha512.New
	case "sha1":
		h = sha1.New
	default:
		return false
	}
	iterations := legacyDefaultIterations
	if len(parts) > 2 {
		n, err := strconv.Atoi(parts[2])
		if err != nil || n <= 0 {
			return false
		}
		iterations = n
	}

	got := pbkdf2.Key([]byte(password), []byte(salt), iterations, len(want), h)
	return subtle.ConstantTimeCompare(got, want) == 1
}

package usecase

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"
)

// Alphabet for seller codes. Avoids ambiguous characters (O/0, I/1) so
// codes survive being read over the phone or hand-typed.
const sellerCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Four groups of five symbols from a 32-symbol alphabet: 100 bits of
// entropy, far beyond brute force against a rate-limited endpoint.
var sellerCodePattern = regexp.MustCompile(
	`^SK-[` + sellerCodeAlphabet + `]{5}(-[` + sellerCodeAlphabet + `]{5}){3}$`)

// generateSellerCode creates a secure, random, human-transcribable code.
// Format: SK-XXXXX-XXXXX-XXXXX-XXXXX
func generateSellerCode() (string, error) {
	const codeLength = 20

	buffer := make([]byte, codeLength)
	if _, err := io.ReadFull(rand.Reader, buffer); err != nil {
		return "", err
	}

	// 256 is a multiple of 32, so the modulo introduces no bias.
	for i := 0; i < codeLength; i++ {
		buffer[i] = sellerCodeAlphabet[int(buffer[i])%len(sellerCodeAlphabet)]
	}

	return fmt.Sprintf("SK-%s-%s-%s-%s",
		buffer[0:5], buffer[5:10], buffer[10:15], buffer[15:20]), nil
}

// validSellerCode checks the exact wire format. Always enforced
// server-side; client-side checks are advisory only.
func validSellerCode(code string) bool {
	return sellerCodePattern.MatchString(code)
}

// hashSellerCode derives the registry lookup key. A fast digest is fine
// here: the code space is 100 bits and attempts are rate limited, and the
// registry needs exact-match lookup, which rules out salted slow hashes.
func hashSellerCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// Package ids generates identifiers for tasks, their sub-records and purchase requests.
package ids

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const base36 = "abcdefghijklmnopqrstuvwxyz0123456789"

// TaskIDLength is the length of identifiers returned by TaskID.
const TaskIDLength = 9

// TaskID returns a 9-character lowercase alphanumeric string using cryptographic randomness.
// Collisions are not checked; uniqueness is probabilistic only.
func TaskID() (string, error) {
	bytes := make([]byte, TaskIDLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	for i := range bytes {
		bytes[i] = base36[int(bytes[i])%len(base36)]
	}

	return string(bytes), nil
}

// ItemID returns an identifier for checklist items, purchase items and log entries.
func ItemID() string {
	return uuid.NewString()
}

// SerialNumber returns a purchase request number in the format PR-<year>-<1000..9999>.
func SerialNumber(year int) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("PR-%d-%d", year, 1000+n.Int64()), nil
}

// Slug converts a string to kebab-case for use in file names.
// Letters of any script are kept and lowercased, spaces and underscores become
// hyphens, other characters are dropped, and repeated hyphens collapse.
func Slug(s string) string {
	var result strings.Builder

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(unicode.ToLower(r))
		} else if r == ' ' || r == '_' || r == '-' {
			result.WriteRune('-')
		}
	}

	str := result.String()
	for strings.Contains(str, "--") {
		str = strings.ReplaceAll(str, "--", "-")
	}

	return strings.Trim(str, "-")
}

package player

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Fingerprint derives the duplicate-detection key for a registration. It is
// deterministic and insensitive to the name's case and surrounding
// whitespace; any change to age or role type yields a different digest.
func Fingerprint(name string, age int, roleType RoleType) string {
	data := fmt.Sprintf("%s-%d-%s", strings.ToLower(strings.TrimSpace(name)), age, roleType)
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// Package identity derives stable dedup keys for listings.
package identity

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/amishk599/medalerts/internal/model"
)

// Fingerprint returns a 32-char hex digest of the case-folded
// "title-company-location" triple. Reposts with the same triple collide on
// purpose, whatever their descriptions say.
func Fingerprint(l model.Listing) string {
	raw := strings.ToLower(l.Title + "-" + l.CompanyName + "-" + l.Location)
	sum := md5.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/domuslabs/domus/internal/model"
)

// Cache defines the interface for analysis-result caching.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// Key derives the stable cache key for one analysis: a hash over the
// pipeline version, both whitespace-normalized input texts, the asking
// price, and the buyer profile serialized with a stable field order.
// Identical keys always produce identical reports for a given
// model.Version.
func Key(inspectionText, disclosureText string, price float64, profile model.BuyerProfile) string {
	h := sha256.New()
	h.Write([]byte(model.Version))
	h.Write([]byte{0})
	h.Write([]byte(normalizeWhitespace(inspectionText)))
	h.Write([]byte{0})
	h.Write([]byte(normalizeWhitespace(disclosureText)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatFloat(price, 'f', -1, 64)))
	h.Write([]byte{0})

	// encoding/json writes struct fields in declaration order, which
	// is stable across runs; the profile carries no maps.
	if data, err := json.Marshal(profile); err == nil {
		h.Write(data)
	}

	return "domus:v1:" + hex.EncodeToString(h.Sum(nil))
}

func normalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

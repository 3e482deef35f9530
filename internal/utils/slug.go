package utils

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a product name into a URL-safe slug with a short random
// suffix so two brands naming a product identically never collide.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "product"
	}
	return s + "-" + uuid.NewString()[:8]
}

// GenerateSKU builds a SKU from the brand name prefix and the current time.
func GenerateSKU(brandName string) string {
	prefix := nonSlugChars.ReplaceAllString(strings.ToLower(brandName), "")
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	if prefix == "" {
		prefix = "swy"
	}
	return fmt.Sprintf("%s-%d", strings.ToUpper(prefix), time.Now().UnixMilli())
}

// GenerateOrderNumber produces a human-readable order number: date plus a
// random suffix. Uniqueness is not checked against the collection.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("SW-%s-%04d", now.Format("20060102"), rand.Intn(10000))
}

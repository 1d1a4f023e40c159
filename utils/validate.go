package utils

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{10,}$`)
)

// ValidateEmail reports whether s looks like an email address
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// ValidatePhone reports whether s looks like a phone number: optional leading +,
// then at least 10 digits, spaces, dashes or parentheses.
func ValidatePhone(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s))
}

// GenerateOrderID returns an order number such as SL1718000000000042
func GenerateOrderID() string {
	return fmt.Sprintf("SL%d%03d", time.Now().UnixMilli(), rand.IntN(1000))
}

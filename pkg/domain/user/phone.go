package user

import (
	"fmt"
	"strings"

	"github.com/amirasaad/balabank/pkg/domain"
)

// CountryCode is the dialing prefix every stored phone number carries.
const CountryCode = "+996"

// subscriberDigits is the length of the national subscriber part.
const subscriberDigits = 9

// ErrInvalidPhone is returned when a phone number cannot be normalized.
var ErrInvalidPhone = fmt.Errorf(
	"%w: phone number must be %d digits (operator code + number), e.g. 555123456",
	domain.ErrInvalidInput, subscriberDigits,
)

// NormalizePhone converts user input to the canonical +996XXXXXXXXX form
// used for storage and lookup. It strips spaces, dashes and parentheses,
// accepts an optional country prefix ("+996" or "996") or a leading national
// zero, and rejects anything that is not exactly nine digits afterwards.
// Canonical input normalizes to itself.
func NormalizePhone(raw string) (string, error) {
	clean := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(raw)

	switch {
	case strings.HasPrefix(clean, CountryCode):
		clean = clean[len(CountryCode):]
	case strings.HasPrefix(clean, CountryCode[1:]) && len(clean) == len(CountryCode[1:])+subscriberDigits:
		clean = clean[len(CountryCode)-1:]
	}

	for _, r := range clean {
		if r < '0' || r > '9' {
			return "", ErrInvalidPhone
		}
	}

	// Forgive a national leading zero: 0555123456 -> 555123456.
	if len(clean) == subscriberDigits+1 && clean[0] == '0' {
		clean = clean[1:]
	}
	if len(clean) != subscriberDigits {
		return "", ErrInvalidPhone
	}
	return CountryCode + clean, nil
}

package account

import (
	"regexp"
	"strings"
)

// Local part must not start or end with a dot; domain needs at least one
// dot-separated TLD of two or more letters. Consecutive dots are rejected
// separately because they can appear on either side of the @.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_+-]([a-zA-Z0-9_.+-]*[a-zA-Z0-9_+-])?@[a-zA-Z0-9-]+(\.[a-zA-Z]{2,})+$`)

var (
	hasLetter = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit  = regexp.MustCompile(`[0-9]`)
	hasSymbol = regexp.MustCompile(`[@$!%*?&#]`)
)

// Free-mail domains HR registrations must not use. HR accounts represent a
// company, so registration requires a company address.
var freeMailDomains = map[string]struct{}{
	"gmail.com":   {},
	"outlook.com": {},
	"hotmail.com": {},
	"yahoo.com":   {},
}

// ValidEmail reports whether s is an acceptable address.
func ValidEmail(s string) bool {
	if strings.Contains(s, "..") {
		return false
	}
	return emailPattern.MatchString(s)
}

// ValidPassword requires length >= 8 with at least one letter, one digit
// and one symbol from @$!%*?&#.
func ValidPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	return hasLetter.MatchString(s) && hasDigit.MatchString(s) && hasSymbol.MatchString(s)
}

// CompanyEmail reports whether the address belongs to a non free-mail
// domain. Callers validate the format first.
func CompanyEmail(s string) bool {
	at := strings.LastIndexByte(s, '@')
	if at < 0 {
		return false
	}
	_, free := freeMailDomains[strings.ToLower(s[at+1:])]
	return !free
}

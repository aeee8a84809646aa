package validation

import (
	"regexp"
	"strings"
	"time"
)

var (
	vatRe      = regexp.MustCompile(`^\d{9}$`)
	amkaRe     = regexp.MustCompile(`^\d{11}$`)
	idCardRe   = regexp.MustCompile(`^[A-ZΑ-Ω]{2}\d{6}$`)
	mobileRe   = regexp.MustCompile(`^69\d{8}$`)
	landlineRe = regexp.MustCompile(`^2\d{9}$`)
	postalRe   = regexp.MustCompile(`^\d{5}$`)
	nonDigitRe = regexp.MustCompile(`[^\d]`)
)

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// ValidateVAT checks a Greek VAT number (ΑΦΜ): 9 digits whose last digit
// is the weighted checksum sum(d_i * 2^(8-i), i=0..7) mod 11, with a
// result of 10 treated as 0. Blank values pass.
func ValidateVAT(value string) error {
	if isBlank(value) {
		return nil
	}
	v := strings.TrimSpace(value)
	if !vatRe.MatchString(v) {
		return FieldError{Field: "vat", Kind: KindFormat, Message: "VAT must be exactly 9 digits"}
	}

	sum := 0
	for i := 0; i < 8; i++ {
		sum += int(v[i]-'0') << (8 - i)
	}
	check := sum % 11
	if check == 10 {
		check = 0
	}
	if check != int(v[8]-'0') {
		return FieldError{Field: "vat", Kind: KindChecksum, Message: "invalid VAT check digit"}
	}
	return nil
}

// ValidateAMKA checks a Greek social security number: 11 digits whose
// first 6 encode a DDMMYY birth date. AMKA does not encode the century
// reliably, so a plausible one is picked (2000s for YY < 25) just to
// verify the date is calendar-valid. Blank values pass.
func ValidateAMKA(value string) error {
	if isBlank(value) {
		return nil
	}
	v := strings.TrimSpace(value)
	if !amkaRe.MatchString(v) {
		return FieldError{Field: "amka", Kind: KindFormat, Message: "AMKA must be exactly 11 digits"}
	}

	dd := int(v[0]-'0')*10 + int(v[1]-'0')
	mm := int(v[2]-'0')*10 + int(v[3]-'0')
	yy := int(v[4]-'0')*10 + int(v[5]-'0')

	year := 1900 + yy
	if yy < 25 {
		year = 2000 + yy
	}
	if !validDate(year, mm, dd) {
		return FieldError{Field: "amka", Kind: KindDate, Message: "invalid birth date in first 6 digits of AMKA"}
	}
	return nil
}

func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

// ValidateIDCard checks a Greek identity card number: two letters (Greek
// or Latin) followed by 6 digits, with spaces or dashes between the
// letter and digit blocks tolerated. Blank values pass.
func ValidateIDCard(value string) error {
	if isBlank(value) {
		return nil
	}
	v := NormalizeIDCard(value)
	if !idCardRe.MatchString(v) {
		return FieldError{Field: "id_card", Kind: KindFormat, Message: "ID card must be two letters followed by 6 digits"}
	}
	return nil
}

// NormalizeIDCard strips spaces and dashes and uppercases.
func NormalizeIDCard(value string) string {
	v := strings.ToUpper(strings.TrimSpace(value))
	v = strings.ReplaceAll(v, " ", "")
	return strings.ReplaceAll(v, "-", "")
}

// ValidateMobile requires a Greek mobile number, 69 followed by 8 digits,
// after stripping separators.
func ValidateMobile(value string) error {
	if isBlank(value) {
		return nil
	}
	if !mobileRe.MatchString(nonDigitRe.ReplaceAllString(value, "")) {
		return FieldError{Field: "mobile", Kind: KindFormat, Message: "mobile must match 69XXXXXXXX"}
	}
	return nil
}

// ValidateLandline requires a Greek landline number, 2 followed by 9
// digits, after stripping separators.
func ValidateLandline(value string) error {
	if isBlank(value) {
		return nil
	}
	if !landlineRe.MatchString(nonDigitRe.ReplaceAllString(value, "")) {
		return FieldError{Field: "landline", Kind: KindFormat, Message: "landline must match 2XXXXXXXXX"}
	}
	return nil
}

// ValidatePostalCode requires exactly 5 digits with no spaces.
func ValidatePostalCode(value string) error {
	if isBlank(value) {
		return nil
	}
	if !postalRe.MatchString(strings.TrimSpace(value)) {
		return FieldError{Field: "postal_code", Kind: KindFormat, Message: "postal code must be exactly 5 digits"}
	}
	return nil
}

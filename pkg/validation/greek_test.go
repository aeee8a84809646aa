package validation

import (
	"errors"
	"testing"
)

// buildVAT appends the correct check digit to 8 leading digits.
func buildVAT(prefix string) string {
	sum := 0
	for i := 0; i < 8; i++ {
		sum += int(prefix[i]-'0') << (8 - i)
	}
	check := sum % 11
	if check == 10 {
		check = 0
	}
	return prefix + string(rune('0'+check))
}

func TestValidateVAT(t *testing.T) {
	valid := buildVAT("09425921")

	if err := ValidateVAT(valid); err != nil {
		t.Fatalf("expected %s to pass, got %v", valid, err)
	}
	if err := ValidateVAT(""); err != nil {
		t.Fatalf("blank VAT should pass, got %v", err)
	}
	if err := ValidateVAT("  "); err != nil {
		t.Fatalf("whitespace VAT should pass, got %v", err)
	}

	// every other check digit fails with a checksum error
	for d := 0; d <= 9; d++ {
		candidate := valid[:8] + string(rune('0'+d))
		err := ValidateVAT(candidate)
		if candidate == valid {
			if err != nil {
				t.Errorf("%s: expected pass, got %v", candidate, err)
			}
			continue
		}
		var fe FieldError
		if !errors.As(err, &fe) || fe.Kind != KindChecksum {
			t.Errorf("%s: expected checksum error, got %v", candidate, err)
		}
	}
}

func TestValidateVATFormat(t *testing.T) {
	for _, value := range []string{"12345678", "1234567890", "12345678a", "abcdefghi"} {
		err := ValidateVAT(value)
		var fe FieldError
		if !errors.As(err, &fe) || fe.Kind != KindFormat {
			t.Errorf("%q: expected format error, got %v", value, err)
		}
	}
}

func TestValidateAMKA(t *testing.T) {
	cases := []struct {
		value string
		kind  Kind
	}{
		{"01019012345", ""},    // 01/01/1990
		{"29022012345", ""},    // 29/02/2020, leap year
		{"", ""},                     // blank passes
		{"30139012345", KindDate},    // month 13
		{"32019012345", KindDate},    // day 32
		{"29023012345", KindDate},    // 29/02/1930 not a leap day
		{"0101901234", KindFormat},   // 10 digits
		{"010190123456", KindFormat}, // 12 digits
		{"01019012a45", KindFormat},
	}
	for _, tc := range cases {
		err := ValidateAMKA(tc.value)
		if tc.kind == "" {
			if err != nil {
				t.Errorf("%q: expected pass, got %v", tc.value, err)
			}
			continue
		}
		var fe FieldError
		if !errors.As(err, &fe) || fe.Kind != tc.kind {
			t.Errorf("%q: expected %s error, got %v", tc.value, tc.kind, err)
		}
	}
}

func TestValidateIDCard(t *testing.T) {
	for _, value := range []string{"AB123456", "ab123456", "AB 123456", "AB-123456", "ΑΒ123456", "ΑΒ 123456", ""} {
		if err := ValidateIDCard(value); err != nil {
			t.Errorf("%q: expected pass, got %v", value, err)
		}
	}
	for _, value := range []string{"A123456", "ABC123456", "AB12345", "AB1234567", "12123456"} {
		if err := ValidateIDCard(value); err == nil {
			t.Errorf("%q: expected rejection", value)
		}
	}
}

func TestValidatePhones(t *testing.T) {
	if err := ValidateMobile("6912345678"); err != nil {
		t.Errorf("mobile: %v", err)
	}
	if err := ValidateMobile("69 1234 5678"); err != nil {
		t.Errorf("mobile with separators: %v", err)
	}
	if err := ValidateMobile("2101234567"); err == nil {
		t.Error("landline number accepted as mobile")
	}
	if err := ValidateLandline("2101234567"); err != nil {
		t.Errorf("landline: %v", err)
	}
	if err := ValidateLandline("6912345678"); err == nil {
		t.Error("mobile number accepted as landline")
	}
}

func TestValidatePostalCode(t *testing.T) {
	if err := ValidatePostalCode("57001"); err != nil {
		t.Errorf("postal: %v", err)
	}
	for _, value := range []string{"5700", "570011", "57 01", "5700a"} {
		if err := ValidatePostalCode(value); err == nil {
			t.Errorf("%q: expected rejection", value)
		}
	}
}

func TestUpperNoTone(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Παπαδόπουλος", "ΠΑΠΑΔΟΠΟΥΛΟΣ"},
		{"  μαρία   άννα ", "ΜΑΡΙΑ ΑΝΝΑ"},
		{"john doe", "JOHN DOE"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := UpperNoTone(tc.in); got != tc.want {
			t.Errorf("UpperNoTone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

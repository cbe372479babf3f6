package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"03001234567", "+923001234567", "0300-1234567", "0300 1234567"}
	invalid := []string{"12345", "abcdefghijk", "0300123456789012345", ""}
	for _, phone := range valid {
		if !IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", phone)
		}
	}
	for _, phone := range invalid {
		if IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", phone)
		}
	}
}

func TestIsValidIDCardNumber(t *testing.T) {
	valid := []string{"35202-1234567-1", "1234567890123", "12345"}
	invalid := []string{"1234", "-12345-", "abcde12345", ""}
	for _, id := range valid {
		if !IsValidIDCardNumber(id) {
			t.Errorf("IsValidIDCardNumber(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidIDCardNumber(id) {
			t.Errorf("IsValidIDCardNumber(%q) = true, want false", id)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	allowed := []string{".jpg", ".png", ".pdf"}
	if !IsInSlice(".png", allowed) {
		t.Error("IsInSlice(.png) = false, want true")
	}
	if IsInSlice(".exe", allowed) {
		t.Error("IsInSlice(.exe) = true, want false")
	}
	if IsInSlice("", nil) {
		t.Error("IsInSlice on nil slice = true, want false")
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-03-10"); !ok {
		t.Error("IsValidDate(2025-03-10) = false, want true")
	}
	if _, ok := IsValidDate("10-03-2025"); ok {
		t.Error("IsValidDate(10-03-2025) = true, want false")
	}
	if _, ok := IsValidDate(""); ok {
		t.Error("IsValidDate(\"\") = true, want false")
	}
}

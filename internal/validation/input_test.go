package validation

import "testing"

func TestClassifyIdentifier(t *testing.T) {
	cases := []struct {
		input string
		want  InputKind
	}{
		{"user@example.com", KindEmail},
		{"first.last+tag@mail.co", KindEmail},
		{"+998901234567", KindPhone},
		{"+998 93 123 45 67", KindPhone},
		{"+998-71-123-45-67", KindPhone},
		{"+79001234567", KindUnknown},
		{"+998121234567", KindUnknown},
		{"annlee", KindUnknown},
		{"", KindUnknown},
	}

	for _, tc := range cases {
		if got := ClassifyIdentifier(tc.input); got != tc.want {
			t.Errorf("ClassifyIdentifier(%q) = %s, ожидали %s", tc.input, got, tc.want)
		}
	}
}

func TestClassifyLoginInput(t *testing.T) {
	cases := []struct {
		input string
		want  InputKind
	}{
		// Свободный шаблон username перехватывает адреса без спецсимволов.
		{"annlee", KindUsername},
		{"ann.lee_01", KindUsername},
		{"user@example.com", KindEmail},
		{"+998901234567", KindPhone},
		{"ab", KindUnknown},
		{"", KindUnknown},
	}

	for _, tc := range cases {
		if got := ClassifyLoginInput(tc.input); got != tc.want {
			t.Errorf("ClassifyLoginInput(%q) = %s, ожидали %s", tc.input, got, tc.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  User@Example.COM "); got != "user@example.com" {
		t.Fatalf("Normalize вернул %q", got)
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("имя", "Ann"); err != nil {
		t.Fatalf("валидное имя отклонено: %v", err)
	}
	if err := ValidateName("имя", "Анна"); err != nil {
		t.Fatalf("кириллическое имя отклонено: %v", err)
	}
	if err := ValidateName("имя", "Al"); err == nil {
		t.Fatal("слишком короткое имя должно быть отклонено")
	}
	if err := ValidateName("имя", "Ann1"); err == nil {
		t.Fatal("имя с цифрой должно быть отклонено")
	}
}

func TestValidateUsername(t *testing.T) {
	if err := ValidateUsername("ann.lee_01"); err != nil {
		t.Fatalf("валидный username отклонён: %v", err)
	}
	if err := ValidateUsername("ab"); err == nil {
		t.Fatal("короткий username должен быть отклонён")
	}
	if err := ValidateUsername("ann lee"); err == nil {
		t.Fatal("username с пробелом должен быть отклонён")
	}
}

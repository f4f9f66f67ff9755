package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestGroupThousands(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1 000"},
		{48800, "48 800"},
		{2899664, "2 899 664"},
		{-135200, "-135 200"},
	}
	for _, tc := range cases {
		if got := GroupThousands(tc.n); got != tc.want {
			t.Errorf("GroupThousands(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestFormatRub(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{0, "0 руб."},
		{386640, "386 640 руб."},
		{386639.6, "386 640 руб."},
		{2899664, "2 899 664 руб."},
	}
	for _, tc := range cases {
		if got := FormatRub(tc.v); got != tc.want {
			t.Errorf("FormatRub(%v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestAmountInWords(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "Ноль рублей 00 копеек"},
		{1, "Один рубль 00 копеек"},
		{2, "Два рубля 00 копеек"},
		{21, "Двадцать один рубль 00 копеек"},
		{100, "Сто рублей 00 копеек"},
		{1000, "Одна тысяча рублей 00 копеек"},
		{2000, "Две тысячи рублей 00 копеек"},
		{5000, "Пять тысяч рублей 00 копеек"},
		{121350, "Сто двадцать одна тысяча триста пятьдесят рублей 00 копеек"},
		{1000000, "Один миллион рублей 00 копеек"},
		{2899664, "Два миллиона восемьсот девяносто девять тысяч шестьсот шестьдесят четыре рубля 00 копеек"},
		{15.5, "Пятнадцать рублей 50 копеек"},
	}
	for _, tc := range cases {
		if got := AmountInWords(tc.amount); got != tc.want {
			t.Errorf("AmountInWords(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestJWTRoundTrip(t *testing.T) {
	tokenString, err := GenerateJWT("user@example.com")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	token, err := ValidateJWT(tokenString)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if !token.Valid {
		t.Error("token should be valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("unexpected claims type %T", token.Claims)
	}
	if claims["email"] != "user@example.com" {
		t.Errorf("email claim = %v", claims["email"])
	}
	if claims["type"] != "access" {
		t.Errorf("type claim = %v", claims["type"])
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	if _, err := ValidateJWT("not-a-token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestPasswordHashing(t *testing.T) {
	if testing.Short() {
		t.Skip("bcrypt with high cost is slow")
	}

	hash, err := HashPassword("s3cret-Пароль")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := ValidatePassword(hash, "s3cret-Пароль"); err != nil {
		t.Errorf("valid password rejected: %v", err)
	}
	if err := ValidatePassword(hash, "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
}

package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func ErrorResponse(c *gin.Context, message string, code int) {
	c.JSON(code, Response{Code: code, Message: message})
}

func SuccessResponse(c *gin.Context, message string, code int) {
	c.JSON(code, Response{Code: code, Message: message})
}

const secretKey = "aquacalc"

// GenerateJWT creates a short-lived access token for the given email.
func GenerateJWT(email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"type":  "access",
		"exp":   time.Now().Add(15 * time.Minute).Unix(),
	})
	return token.SignedString([]byte(secretKey))
}

// GenerateRefreshToken creates a long-lived refresh token bound to a session.
func GenerateRefreshToken(email, sessionID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email":     email,
		"type":      "refresh",
		"sessionId": sessionID,
		"exp":       time.Now().Add(15 * 24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(secretKey))
}

func ValidateJWT(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return token, nil
}

func ValidatePassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// GroupThousands formats an integer with space-separated thousand groups,
// e.g. 2899664 becomes "2 899 664".
func GroupThousands(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)
	return sign + strings.Join(groups, " ")
}

// FormatRub renders a ruble amount rounded to whole rubles, e.g.
// "2 899 664 руб.".
func FormatRub(v float64) string {
	return GroupThousands(int64(math.Round(v))) + " руб."
}

var (
	wordUnits = []string{"", "один", "два", "три", "четыре", "пять", "шесть", "семь", "восемь", "девять"}
	wordTeens = []string{"десять", "одиннадцать", "двенадцать", "тринадцать", "четырнадцать",
		"пятнадцать", "шестнадцать", "семнадцать", "восемнадцать", "девятнадцать"}
	wordTens = []string{"", "", "двадцать", "тридцать", "сорок", "пятьдесят",
		"шестьдесят", "семьдесят", "восемьдесят", "девяносто"}
	wordHundreds = []string{"", "сто", "двести", "триста", "четыреста", "пятьсот",
		"шестьсот", "семьсот", "восемьсот", "девятьсот"}
)

// group numbers 1..999 as words; feminine switches one/two for thousands.
func groupWords(n int64, feminine bool) []string {
	var words []string
	if h := n / 100; h > 0 {
		words = append(words, wordHundreds[h])
	}
	rest := n % 100
	switch {
	case rest >= 10 && rest < 20:
		words = append(words, wordTeens[rest-10])
	default:
		if t := rest / 10; t > 0 {
			words = append(words, wordTens[t])
		}
		if u := rest % 10; u > 0 {
			if feminine && u == 1 {
				words = append(words, "одна")
			} else if feminine && u == 2 {
				words = append(words, "две")
			} else {
				words = append(words, wordUnits[u])
			}
		}
	}
	return words
}

// pluralForm picks the Russian plural form for a count: one, few or many.
func pluralForm(n int64, one, few, many string) string {
	n = n % 100
	if n >= 11 && n <= 19 {
		return many
	}
	switch n % 10 {
	case 1:
		return one
	case 2, 3, 4:
		return few
	default:
		return many
	}
}

// AmountInWords spells out a ruble amount in Russian, with kopecks as
// digits, e.g. "Два миллиона восемьсот тысяч рублей 00 копеек".
func AmountInWords(amount float64) string {
	rubles := int64(amount)
	kopecks := int64(math.Round((amount - float64(rubles)) * 100))
	if kopecks >= 100 {
		rubles++
		kopecks -= 100
	}

	var words []string
	if rubles == 0 {
		words = append(words, "ноль")
	} else {
		if b := rubles / 1_000_000_000 % 1000; b > 0 {
			words = append(words, groupWords(b, false)...)
			words = append(words, pluralForm(b, "миллиард", "миллиарда", "миллиардов"))
		}
		if m := rubles / 1_000_000 % 1000; m > 0 {
			words = append(words, groupWords(m, false)...)
			words = append(words, pluralForm(m, "миллион", "миллиона", "миллионов"))
		}
		if t := rubles / 1000 % 1000; t > 0 {
			words = append(words, groupWords(t, true)...)
			words = append(words, pluralForm(t, "тысяча", "тысячи", "тысяч"))
		}
		if u := rubles % 1000; u > 0 {
			words = append(words, groupWords(u, false)...)
		}
	}

	words = append(words, pluralForm(rubles, "рубль", "рубля", "рублей"))
	runes := []rune(strings.Join(words, " "))
	runes[0] = unicode.ToUpper(runes[0])
	result := string(runes)

	return fmt.Sprintf("%s %02d %s", result, kopecks,
		pluralForm(kopecks, "копейка", "копейки", "копеек"))
}

package usecase

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Field validators for values arriving at the HTTP boundary. Each returns the
// normalized value; business-state checks (billing completeness, item
// liveness) are not done here.

// ValidateUsername normalizes and checks an account username.
func ValidateUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", errors.New("username must not be empty")
	}
	if len(username) > 24 {
		return "", errors.New("username too long")
	}
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '_':
		default:
			return "", errors.New("username must only contain lowercase letters, numbers, dots, and underscores")
		}
	}
	return username, nil
}

// ValidatePassword checks password length.
func ValidatePassword(password string) (string, error) {
	if len(password) < 6 {
		return "", errors.New("password must be at least 6 characters long")
	}
	return password, nil
}

// ValidateName normalizes a first/last name.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("name must not be empty")
	}
	if len(name) > 100 {
		return "", errors.New("name too long")
	}
	return name, nil
}

// ValidateRestaurantName normalizes a restaurant name.
func ValidateRestaurantName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("restaurant name must not be blank")
	}
	if len(name) > 100 {
		return "", errors.New("restaurant name too long")
	}
	return name, nil
}

// ValidateMenuItemName normalizes a menu item name.
func ValidateMenuItemName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("item name must not be empty")
	}
	if len(name) > 100 {
		return "", errors.New("item name too long")
	}
	return name, nil
}

// ValidateAddress normalizes a delivery address.
func ValidateAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", errors.New("address must not be blank")
	}
	if len(address) > 500 {
		return "", errors.New("address too long")
	}
	return address, nil
}

// ValidateCardNumber normalizes a card number and verifies its Luhn checksum.
func ValidateCardNumber(number string) (string, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return "", errors.New("card number must not be blank")
	}

	var sum int
	var alt bool
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return "", errors.New("card number must only contain numbers")
		}
		digit := int(c - '0')
		if alt {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		alt = !alt
	}
	if sum%10 != 0 {
		return "", errors.New("invalid credit card number")
	}
	return number, nil
}

// ValidateCardCode normalizes a card security code.
func ValidateCardCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" || len(code) > 3 {
		return "", errors.New("invalid card code")
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return "", errors.New("card code must only contain numbers")
		}
	}
	return code, nil
}

// ValidateCardExpiry checks an MM/YY expiry date.
func ValidateCardExpiry(date string) (string, error) {
	date = strings.TrimSpace(date)
	if len(date) != 5 || date[2] != '/' {
		return "", errors.New("invalid card expiry (must be MM/YY)")
	}
	month, err := strconv.Atoi(date[0:2])
	if err != nil {
		return "", errors.New("invalid card expiry (must be MM/YY)")
	}
	if _, err := strconv.Atoi(date[3:5]); err != nil {
		return "", errors.New("invalid card expiry (must be MM/YY)")
	}
	if month < 1 || month > 12 {
		return "", errors.New("invalid card expiry month")
	}
	return date, nil
}

// ParsePrice parses a decimal price string, with an optional leading dollar
// sign, into cents. At most two fractional digits are accepted.
func ParsePrice(price string) (int64, error) {
	price = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(price), "$"))
	if price == "" {
		return 0, errors.New("price must not be blank")
	}

	whole, frac, _ := strings.Cut(price, ".")
	if whole == "" {
		whole = "0"
	}
	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || dollars < 0 {
		return 0, fmt.Errorf("invalid price %q", price)
	}

	var cents int64
	if frac != "" {
		if len(frac) > 2 {
			return 0, fmt.Errorf("invalid price %q", price)
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || cents < 0 {
			return 0, fmt.Errorf("invalid price %q", price)
		}
		if len(frac) == 1 {
			cents *= 10
		}
	}

	return dollars*100 + cents, nil
}

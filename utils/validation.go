// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// ValidateWhatsapp checks if a whatsapp number is in a valid international format
func ValidateWhatsapp(number string) bool {
	// Clean the number
	cleaned := strings.ReplaceAll(number, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

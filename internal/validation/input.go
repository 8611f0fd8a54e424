package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

// Константы валидации
const (
	MaxListingTitleLength       = 200
	MaxListingDescriptionLength = 5000
	MaxCityLength               = 100
	StateCodeLength             = 2
	MaxReportDescriptionLength  = 2000
	MaxReasonLength             = 500
	MaxAdminNotesLength         = 2000
)

// ValidateLength проверяет длину строки в символах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return apperror.Validation(fmt.Sprintf("%s должно быть не менее %d символов", fieldName, min))
	}
	if max > 0 && length > max {
		return apperror.Validation(fmt.Sprintf("%s должно быть не более %d символов", fieldName, max))
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperror.Validation(fmt.Sprintf("%s не может быть пустым", fieldName))
	}
	return nil
}

// ValidateListingTitle ожидает уже обрезанный заголовок.
func ValidateListingTitle(title string) error {
	if title == "" {
		return apperror.Validation("название объявления обязательно")
	}
	return ValidateLength("название объявления", title, 0, MaxListingTitleLength)
}

func ValidateListingDescription(description string) error {
	return ValidateLength("описание объявления", description, 0, MaxListingDescriptionLength)
}

// ValidateLocation проверяет город и код штата. Оба поля необязательны,
// но штат, если указан, это две латинские буквы (UF).
func ValidateLocation(city, state string) error {
	if err := ValidateLength("название города", city, 0, MaxCityLength); err != nil {
		return err
	}
	if state == "" {
		return nil
	}
	if utf8.RuneCountInString(state) != StateCodeLength {
		return apperror.Validation("код штата должен состоять из двух букв")
	}
	for _, r := range state {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return apperror.Validation("код штата должен состоять из двух букв")
		}
	}
	return nil
}

// NormalizeState приводит код штата к верхнему регистру.
func NormalizeState(state string) string {
	return strings.ToUpper(strings.TrimSpace(state))
}

func ValidateReportDescription(description string) error {
	if description == "" {
		return apperror.Validation("опишите проблему")
	}
	return ValidateLength("описание жалобы", description, 0, MaxReportDescriptionLength)
}

// ValidateReason проверяет причину отклонения или блокировки.
func ValidateReason(fieldName, reason string) error {
	if err := ValidateNonEmpty(fieldName, reason); err != nil {
		return err
	}
	return ValidateLength(fieldName, reason, 0, MaxReasonLength)
}

func ValidateAdminNotes(notes string) error {
	return ValidateLength("заметки администратора", notes, 0, MaxAdminNotesLength)
}

package valueobject

import (
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/classifieds-backend/internal/pkg/apperror"
)

// Price хранит цену объявления в десятичном виде без потерь точности.
type Price struct {
	decimal.Decimal
}

func NewPrice(amount decimal.Decimal) (Price, error) {
	if amount.IsNegative() {
		return Price{}, apperror.Validation("цена не может быть отрицательной")
	}
	return Price{Decimal: amount.Round(2)}, nil
}

// NewPositivePrice используется при публикации и редактировании: бесплатных объявлений нет.
func NewPositivePrice(amount decimal.Decimal) (Price, error) {
	if !amount.IsPositive() {
		return Price{}, apperror.Validation("укажите корректную цену больше нуля")
	}
	return NewPrice(amount)
}

func ParsePrice(raw string) (Price, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return Price{}, apperror.Validation("некорректный формат цены")
	}
	return NewPositivePrice(amount)
}

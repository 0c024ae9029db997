package handlers

import (
	"errors"

	"sprpay/internal/services/currency"
	"sprpay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CurrencyHandler struct {
	converter currency.Service
}

func NewCurrencyHandler(converter currency.Service) *CurrencyHandler {
	return &CurrencyHandler{converter: converter}
}

func (h *CurrencyHandler) Convert(c *fiber.Ctx) error {
	var input struct {
		Amount float64 `json:"amount"`
		From   string  `json:"from"`
		To     string  `json:"to"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	converted, err := h.converter.Convert(c.Context(), input.Amount, input.From, input.To)
	if err != nil {
		if errors.Is(err, currency.ErrMissingExchangeRate) {
			return utils.BadRequest(c, "currency not supported, please pay in USD")
		}
		return utils.InternalError(c, "conversion failed")
	}
	return utils.Success(c, fiber.Map{"amount": converted})
}

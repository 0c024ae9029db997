package handlers

import (
	"errors"

	"sprpay/internal/services/ledger"
	"sprpay/internal/services/subscription"
	"sprpay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type SubscriptionHandler struct {
	subscriptionService subscription.Service
}

func NewSubscriptionHandler(subscriptionService subscription.Service) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

func (h *SubscriptionHandler) Purchase(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		PackID         uint                        `json:"pack_id"`
		Payment        subscription.PaymentDetails `json:"payment"`
		DurationMonths int                         `json:"duration_months"`
		SponsorCode    string                      `json:"sponsor_code"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	sub, err := h.subscriptionService.PurchaseNewPack(c.Context(), claims.UserID,
		input.PackID, input.Payment, input.DurationMonths, input.SponsorCode)
	if err != nil {
		return subscriptionError(c, err)
	}
	return utils.Respond(c, fiber.StatusCreated, fiber.Map{"subscription": sub})
}

func (h *SubscriptionHandler) Renew(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		SubscriptionID uint                        `json:"subscription_id"`
		Payment        subscription.PaymentDetails `json:"payment"`
		DurationMonths int                         `json:"duration_months"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	sub, err := h.subscriptionService.RenewPack(c.Context(), claims.UserID,
		input.SubscriptionID, input.Payment, input.DurationMonths)
	if err != nil {
		return subscriptionError(c, err)
	}
	return utils.Success(c, fiber.Map{"subscription": sub})
}

// subscriptionError maps lifecycle failures to user-facing responses.
func subscriptionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, subscription.ErrInsufficientPayment),
		errors.Is(err, subscription.ErrInvalidDuration),
		errors.Is(err, subscription.ErrPackInactive),
		errors.Is(err, subscription.ErrUnsupportedCurrency),
		errors.Is(err, ledger.ErrInsufficientFunds):
		return utils.BadRequest(c, err.Error())
	default:
		return utils.InternalError(c, "purchase failed")
	}
}

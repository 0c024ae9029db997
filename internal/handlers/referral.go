package handlers

import (
	"errors"

	"sprpay/internal/services/referral"
	"sprpay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ReferralHandler struct {
	codes *referral.CodeGenerator
}

func NewReferralHandler(codes *referral.CodeGenerator) *ReferralHandler {
	return &ReferralHandler{codes: codes}
}

func (h *ReferralHandler) GenerateReferralCode(c *fiber.Ctx) error {
	code, err := h.codes.GenerateUniqueReferralCode()
	if err != nil {
		return referralError(c, err)
	}
	return utils.Success(c, fiber.Map{"code": code, "link": h.codes.BuildReferralURL(code)})
}

func (h *ReferralHandler) GeneratePackReferralCode(c *fiber.Ctx) error {
	packName := c.Query("pack")
	if packName == "" {
		return utils.BadRequest(c, "pack name is required")
	}

	code, err := h.codes.GeneratePackReferralCode(packName)
	if err != nil {
		return referralError(c, err)
	}
	return utils.Success(c, fiber.Map{"referral": code})
}

func referralError(c *fiber.Ctx, err error) error {
	if errors.Is(err, referral.ErrCodeGenerationExhausted) {
		return utils.Respond(c, fiber.StatusServiceUnavailable, fiber.Map{"error": err.Error()})
	}
	return utils.InternalError(c, "code generation failed")
}

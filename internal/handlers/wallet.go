package handlers

import (
	"sprpay/internal/repositories"
	"sprpay/internal/services/ledger"
	"sprpay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	ledgerService ledger.Service
	commissions   repositories.CommissionRepository
}

func NewWalletHandler(ledgerService ledger.Service, commissions repositories.CommissionRepository) *WalletHandler {
	return &WalletHandler{ledgerService: ledgerService, commissions: commissions}
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	wallet, err := h.ledgerService.GetWallet(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "failed to get wallet")
	}
	return utils.Success(c, fiber.Map{"wallet": wallet})
}

func (h *WalletHandler) GetCommissions(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	commissions, err := h.commissions.ListByBeneficiary(claims.UserID, limit, offset)
	if err != nil {
		return utils.InternalError(c, "failed to list commissions")
	}
	return utils.Success(c, fiber.Map{"commissions": commissions})
}

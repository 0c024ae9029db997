// Package referral produces collision-free account identifiers and referral
// codes, and builds referral URLs.
package referral

import (
	"fmt"
	"strings"

	"sprpay/internal/repositories"
	"sprpay/internal/utils"
)

const (
	accountIDPrefix    = "ACC"
	referralCodePrefix = "REF"
	packCodePrefix     = "SPR"

	accountIDDigits    = 8
	referralCodeDigits = 6
	packCodeDigits     = 4

	// maxGenerationAttempts bounds the keep-trying-until-unique loop so a
	// saturated code space fails instead of spinning forever.
	maxGenerationAttempts = 25
)

// PackReferralCode is a generated referral token for one subscription.
type PackReferralCode struct {
	Code   string `json:"code"`
	Link   string `json:"link"`
	Letter string `json:"letter"`
	Number string `json:"number"`
	Prefix string `json:"prefix"`
}

// CodeGenerator issues unique account IDs and referral codes.
type CodeGenerator struct {
	users   repositories.UserRepository
	subs    repositories.SubscriptionRepository
	baseURL string
}

func NewCodeGenerator(users repositories.UserRepository, subs repositories.SubscriptionRepository, baseURL string) *CodeGenerator {
	return &CodeGenerator{
		users:   users,
		subs:    subs,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GenerateUniqueAccountID returns a fresh public account identifier.
func (g *CodeGenerator) GenerateUniqueAccountID() (string, error) {
	return g.generate(accountIDPrefix, accountIDDigits, g.users.AccountIDExists)
}

// GenerateUniqueReferralCode returns a fresh generic referral code.
func (g *CodeGenerator) GenerateUniqueReferralCode() (string, error) {
	return g.generate(referralCodePrefix, referralCodeDigits, g.subs.ReferralCodeExists)
}

// GeneratePackReferralCode returns a unique referral code for a subscription
// of the named pack: "SPR" + first letter of the pack + 4 random digits.
func (g *CodeGenerator) GeneratePackReferralCode(packName string) (*PackReferralCode, error) {
	letter := "X"
	if packName != "" {
		letter = strings.ToUpper(packName[:1])
	}

	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		number, err := utils.RandomDigits(packCodeDigits)
		if err != nil {
			return nil, fmt.Errorf("failed to generate code digits: %w", err)
		}
		code := packCodePrefix + letter + number

		exists, err := g.subs.ReferralCodeExists(code)
		if err != nil {
			return nil, fmt.Errorf("failed to check code uniqueness: %w", err)
		}
		if !exists {
			return &PackReferralCode{
				Code:   code,
				Link:   g.BuildReferralURL(code),
				Letter: letter,
				Number: number,
				Prefix: packCodePrefix,
			}, nil
		}
	}
	return nil, ErrCodeGenerationExhausted
}

// BuildReferralURL returns the registration link carrying a referral code.
func (g *CodeGenerator) BuildReferralURL(code string) string {
	return fmt.Sprintf("%s/register?ref=%s", g.baseURL, code)
}

func (g *CodeGenerator) generate(prefix string, digits int, exists func(string) (bool, error)) (string, error) {
	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		number, err := utils.RandomDigits(digits)
		if err != nil {
			return "", fmt.Errorf("failed to generate code digits: %w", err)
		}
		candidate := prefix + number

		taken, err := exists(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check code uniqueness: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrCodeGenerationExhausted
}

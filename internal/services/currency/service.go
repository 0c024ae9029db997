// Package currency converts amounts between currencies using the stored rate
// table, refreshing it from the external provider on a miss.
package currency

import (
	"context"
	"errors"
	"fmt"

	"sprpay/internal/repositories"
	"sprpay/internal/utils"

	"github.com/sirupsen/logrus"
)

// Service converts monetary amounts between currencies.
type Service interface {
	Convert(ctx context.Context, amount float64, from, to string) (float64, error)
	Rate(ctx context.Context, from, to string) (float64, error)
	Refresh(ctx context.Context, base string) error
}

type service struct {
	rates    repositories.RateRepository
	provider RateProvider
	log      *logrus.Entry
}

func NewService(rates repositories.RateRepository, provider RateProvider) Service {
	if rates == nil {
		panic("rate repository is required")
	}
	return &service{
		rates:    rates,
		provider: provider,
		log:      logrus.WithField("component", "currency"),
	}
}

// Convert returns amount expressed in the target currency, rounded to 2
// decimal places. Identical currencies convert to the amount unchanged. On a
// rate-table miss the stored table is refreshed from the provider and the
// lookup retried once; a second miss fails with ErrMissingExchangeRate.
func (s *service) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	if from == to {
		return amount, nil
	}
	rate, err := s.Rate(ctx, from, to)
	if err != nil {
		return 0, err
	}
	return utils.RoundCurrency(amount * rate), nil
}

// Rate returns the stored conversion factor for a currency pair, refreshing
// the table once on a miss.
func (s *service) Rate(ctx context.Context, from, to string) (float64, error) {
	if from == to {
		return 1, nil
	}

	rate, err := s.rates.GetRate(from, to)
	if errors.Is(err, repositories.ErrExchangeRateNotFound) {
		if refreshErr := s.Refresh(ctx, from); refreshErr != nil {
			return 0, fmt.Errorf("%w: %v", ErrMissingExchangeRate, refreshErr)
		}
		rate, err = s.rates.GetRate(from, to)
		if errors.Is(err, repositories.ErrExchangeRateNotFound) {
			return 0, fmt.Errorf("%w: %s to %s", ErrMissingExchangeRate, from, to)
		}
	}
	if err != nil {
		return 0, err
	}
	return rate.Rate, nil
}

// Refresh replaces the stored rates for base with a fresh snapshot from the
// external provider.
func (s *service) Refresh(ctx context.Context, base string) error {
	if s.provider == nil {
		return ErrRateRefreshFailed
	}
	fetched, err := s.provider.FetchRates(ctx, base)
	if err != nil {
		s.log.WithError(err).WithField("base", base).Warn("rate refresh failed")
		return fmt.Errorf("%w: %v", ErrRateRefreshFailed, err)
	}
	if err := s.rates.UpsertRates(base, fetched); err != nil {
		return fmt.Errorf("%w: %v", ErrRateRefreshFailed, err)
	}
	s.log.WithField("base", base).WithField("count", len(fetched)).Info("exchange rates refreshed")
	return nil
}

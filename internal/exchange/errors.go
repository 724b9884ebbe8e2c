package exchange

import (
	"errors"

	"github.com/adshao/go-binance/v2/common"

	"github.com/Sayantang8/TradeBot/internal/domain"
)

// mapError converts a go-binance error into a *domain.ExchangeError. API
// errors keep the exchange-reported code and message verbatim (e.g. -1013
// "Filter failure: MIN_NOTIONAL"); transport and auth failures carry no
// code. Callers match on the typed error, never on message substrings.
func mapError(op string, err error) error {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		return &domain.ExchangeError{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Op:      op,
		}
	}
	return &domain.ExchangeError{Op: op, Message: err.Error()}
}

package exchange

import (
	"errors"
	"fmt"
	"testing"

	"github.com/adshao/go-binance/v2/common"
	"github.com/stretchr/testify/require"

	"github.com/Sayantang8/TradeBot/internal/domain"
)

func TestMapError_APIErrorKeepsCodeAndMessage(t *testing.T) {
	apiErr := &common.APIError{Code: -1013, Message: "Filter failure: MIN_NOTIONAL"}

	err := mapError("submit order", apiErr)

	var exchangeErr *domain.ExchangeError
	require.ErrorAs(t, err, &exchangeErr)
	require.Equal(t, int64(-1013), exchangeErr.Code)
	require.Equal(t, "Filter failure: MIN_NOTIONAL", exchangeErr.Message)
	require.Equal(t, "submit order", exchangeErr.Op)
}

func TestMapError_WrappedAPIError(t *testing.T) {
	apiErr := &common.APIError{Code: -2015, Message: "Invalid API-key, IP, or permissions for action."}
	wrapped := fmt.Errorf("request failed: %w", apiErr)

	err := mapError("get balances", wrapped)

	var exchangeErr *domain.ExchangeError
	require.ErrorAs(t, err, &exchangeErr)
	require.Equal(t, int64(-2015), exchangeErr.Code)
}

func TestMapError_TransportErrorHasNoCode(t *testing.T) {
	err := mapError("get price", errors.New("dial tcp: connection refused"))

	var exchangeErr *domain.ExchangeError
	require.ErrorAs(t, err, &exchangeErr)
	require.Zero(t, exchangeErr.Code)
	require.Contains(t, exchangeErr.Message, "connection refused")
}

func TestMockGateway_ErrorInjectionIsOneShot(t *testing.T) {
	gw := NewMockGateway()
	gw.ErrorOnNext["CancelOrder"] = &domain.ExchangeError{Code: -2011, Message: "Unknown order sent.", Op: "cancel order"}

	err := gw.CancelOrder(t.Context(), "BTCUSDT", 1)
	require.Error(t, err)

	// 第二次调用恢复正常
	require.NoError(t, gw.CancelOrder(t.Context(), "BTCUSDT", 1))
	require.Equal(t, 2, gw.CallCount("CancelOrder"))
}

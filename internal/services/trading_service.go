package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Sayantang8/TradeBot/internal/domain"
	"github.com/Sayantang8/TradeBot/internal/exchange"
	"github.com/Sayantang8/TradeBot/pkg/config"
)

// TradingService 订单校验与提交。
// 下单前的两道本地检查（余额充足、限价区间）都在这里完成，
// 任何一道失败都不会产生对交易所的下单调用。
type TradingService struct {
	gw exchange.Gateway

	priceBand decimal.Decimal // 限价允许偏离市价的比例（含边界）
	buyBuffer decimal.Decimal // 市价买单余额检查的价格缓冲

	log *logrus.Entry
}

// NewTradingService 创建订单服务。limits 来自配置，见 config.TradingLimits。
func NewTradingService(gw exchange.Gateway, limits config.TradingLimits) *TradingService {
	return &TradingService{
		gw:        gw,
		priceBand: decimal.NewFromFloat(limits.PriceBandPct),
		buyBuffer: decimal.NewFromFloat(limits.MarketBuyBufferPct),
		log:       logrus.WithField("component", "trading"),
	}
}

// PlaceOrder 校验并提交订单。检查顺序固定：
//  1. 请求参数（InvalidInput）
//  2. 余额充足（InsufficientBalance，本地拒绝）
//  3. 限价区间（PriceOutOfBounds，仅限携带限价的类型，本地拒绝）
//  4. 提交（交易所拒绝原样透出为 ExchangeError，不重试）
func (s *TradingService) PlaceOrder(ctx context.Context, req *domain.OrderRequest) (*domain.OrderResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	log := s.log.WithFields(logrus.Fields{
		"symbol": req.Symbol,
		"side":   req.Side,
		"type":   req.Type,
		"qty":    req.Quantity,
	})

	info, err := s.gw.SymbolInfo(ctx, req.Symbol)
	if err != nil {
		return nil, err
	}

	// 携带限价的类型（LIMIT/STOP_LIMIT）做区间检查，市价类型做余额缓冲，
	// 两者都需要当前市价；SELL 市价单则完全不需要。
	var marketPrice decimal.Decimal
	if req.Priced() || req.Side == domain.SideBuy {
		marketPrice, err = s.gw.Price(ctx, req.Symbol)
		if err != nil {
			return nil, err
		}
	}

	if err := s.checkBalance(ctx, req, info, marketPrice, log); err != nil {
		return nil, err
	}

	if req.Priced() {
		if err := s.checkPriceBand(req, marketPrice, log); err != nil {
			return nil, err
		}
	}

	log.Infof("placing %s %s order for %s %s", req.Type, req.Side, req.Quantity, req.Symbol)
	result, err := s.gw.SubmitOrder(ctx, req)
	if err != nil {
		log.Warnf("order rejected by exchange: %v", err)
		return nil, err
	}
	log.Infof("order placed successfully, id=%d status=%s", result.OrderID, result.Status)
	return result, nil
}

// checkBalance 余额充足性检查。
// BUY 需要 quote 资产：限价类型按限价计算，市价类型按市价加缓冲估算；
// SELL 需要 base 资产 free 余额覆盖下单数量。
func (s *TradingService) checkBalance(ctx context.Context, req *domain.OrderRequest, info *domain.SymbolInfo, marketPrice decimal.Decimal, log *logrus.Entry) error {
	snapshot, err := s.gw.Balances(ctx)
	if err != nil {
		return err
	}

	if req.Side == domain.SideSell {
		free := snapshot.Get(info.BaseAsset).Free
		if free.LessThan(req.Quantity) {
			log.Warnf("balance check failed: have %s %s, want to sell %s", free, info.BaseAsset, req.Quantity)
			return &domain.InsufficientBalanceError{
				Asset:       info.BaseAsset,
				Required:    req.Quantity,
				Available:   free,
				MaxQuantity: free,
				BaseAsset:   info.BaseAsset,
			}
		}
		log.Debugf("balance check passed: %s %s free covers sell of %s", free, info.BaseAsset, req.Quantity)
		return nil
	}

	// BUY：成本基准 = 限价，或市价加缓冲
	basis := req.Price
	if !req.Priced() {
		basis = marketPrice.Mul(decimal.NewFromInt(1).Add(s.buyBuffer))
	}
	required := req.Quantity.Mul(basis)
	free := snapshot.Get(info.QuoteAsset).Free
	if free.LessThan(required) {
		maxQty := decimal.Zero
		if basis.IsPositive() {
			maxQty = free.Div(basis)
		}
		log.Warnf("balance check failed: have %s %s, need %s", free, info.QuoteAsset, required)
		return &domain.InsufficientBalanceError{
			Asset:       info.QuoteAsset,
			Required:    required,
			Available:   free,
			MaxQuantity: maxQty,
			BaseAsset:   info.BaseAsset,
		}
	}
	log.Debugf("balance check passed: need %s %s, have %s", required, info.QuoteAsset, free)
	return nil
}

// checkPriceBand 限价区间检查：允许区间为市价 ×[1-band, 1+band]，两端包含。
// 超出区间的限价会触发交易所的 PERCENT_PRICE_BY_SIDE 拒绝，提前在本地拦截。
func (s *TradingService) checkPriceBand(req *domain.OrderRequest, marketPrice decimal.Decimal, log *logrus.Entry) error {
	one := decimal.NewFromInt(1)
	minPrice := marketPrice.Mul(one.Sub(s.priceBand))
	maxPrice := marketPrice.Mul(one.Add(s.priceBand))
	if req.Price.LessThan(minPrice) || req.Price.GreaterThan(maxPrice) {
		log.Warnf("price band check failed: %s outside [%s, %s] (market %s)", req.Price, minPrice, maxPrice, marketPrice)
		return &domain.PriceOutOfBoundsError{
			Symbol:      req.Symbol,
			Price:       req.Price,
			MarketPrice: marketPrice,
			MinPrice:    minPrice,
			MaxPrice:    maxPrice,
		}
	}
	log.Debugf("price band check passed: %s within [%s, %s]", req.Price, minPrice, maxPrice)
	return nil
}

// Price 查询当前市价
func (s *TradingService) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	return s.gw.Price(ctx, symbol)
}

// OpenOrders 查询挂单，symbol 为空时查询全部
func (s *TradingService) OpenOrders(ctx context.Context, symbol string) ([]domain.OpenOrder, error) {
	return s.gw.OpenOrders(ctx, symbol)
}

// CancelOrder 撤销挂单
func (s *TradingService) CancelOrder(ctx context.Context, symbol string, orderID int64) error {
	if err := s.gw.CancelOrder(ctx, symbol, orderID); err != nil {
		return err
	}
	s.log.Infof("order %d on %s cancelled", orderID, symbol)
	return nil
}

// OrderDetails 查询订单详情
func (s *TradingService) OrderDetails(ctx context.Context, symbol string, orderID int64) (*domain.OrderResult, error) {
	return s.gw.GetOrder(ctx, symbol, orderID)
}

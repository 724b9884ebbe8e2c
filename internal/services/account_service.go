package services

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Sayantang8/TradeBot/internal/domain"
	"github.com/Sayantang8/TradeBot/internal/exchange"
)

// Holding 持仓视图条目
type Holding struct {
	Asset  string
	Free   decimal.Decimal
	Locked decimal.Decimal
	Total  decimal.Decimal
}

// AccountService 账户查询：拉取、过滤、排序，不做任何校验逻辑。
type AccountService struct {
	gw  exchange.Gateway
	log *logrus.Entry
}

func NewAccountService(gw exchange.Gateway) *AccountService {
	return &AccountService{
		gw:  gw,
		log: logrus.WithField("component", "account"),
	}
}

// NonZeroBalances 返回 free+locked > 0 的余额，按资产符号排序。
// 网关失败时原样返回错误，不构造部分结果。
func (s *AccountService) NonZeroBalances(ctx context.Context) (domain.BalanceSnapshot, error) {
	snapshot, err := s.gw.Balances(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make(domain.BalanceSnapshot, 0, len(snapshot))
	for _, b := range snapshot {
		if !b.IsZero() {
			filtered = append(filtered, b)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Asset < filtered[j].Asset })
	s.log.Infof("retrieved %d assets with balance", len(filtered))
	return filtered, nil
}

// Holdings 返回每个非零资产的持仓明细（free/locked/total）。
func (s *AccountService) Holdings(ctx context.Context) ([]Holding, error) {
	balances, err := s.NonZeroBalances(ctx)
	if err != nil {
		return nil, err
	}
	holdings := make([]Holding, 0, len(balances))
	for _, b := range balances {
		holdings = append(holdings, Holding{
			Asset:  b.Asset,
			Free:   b.Free,
			Locked: b.Locked,
			Total:  b.Total(),
		})
	}
	return holdings, nil
}

package domain

import "github.com/shopspring/decimal"

// Balance 单个资产余额。free 可用于新订单，locked 被挂单占用。
type Balance struct {
	Asset  string
	Free   decimal.Decimal
	Locked decimal.Decimal
}

// Total 持仓合计（free + locked）
func (b Balance) Total() decimal.Decimal {
	return b.Free.Add(b.Locked)
}

// IsZero free 和 locked 是否都为零
func (b Balance) IsZero() bool {
	return b.Free.IsZero() && b.Locked.IsZero()
}

// BalanceSnapshot 账户余额快照。每个命令重新拉取，不跨命令缓存。
type BalanceSnapshot []Balance

// Get 按资产符号查找余额，找不到返回零余额。
func (s BalanceSnapshot) Get(asset string) Balance {
	for _, b := range s {
		if b.Asset == asset {
			return b
		}
	}
	return Balance{Asset: asset, Free: decimal.Zero, Locked: decimal.Zero}
}

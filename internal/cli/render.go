package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Sayantang8/TradeBot/internal/domain"
	"github.com/Sayantang8/TradeBot/internal/services"
)

var (
	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	// 成功样式（绿色）
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	// 错误样式（红色）
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	// 次要信息样式（灰色）
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// renderBanner 启动横幅
func renderBanner() string {
	lines := []string{
		titleStyle.Render("BINANCE SPOT TRADING BOT"),
		titleStyle.Render("(TESTNET MODE)"),
		"",
		"WARNING: testnet only, no real money involved.",
		dimStyle.Render("Always test thoroughly before using with real funds."),
	}
	return borderStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// renderHelp 命令帮助
func renderHelp() string {
	var b strings.Builder
	b.WriteString("Available commands:\n")
	b.WriteString("  place     - Place a new order\n")
	b.WriteString("  balance   - Check account balance\n")
	b.WriteString("  holdings  - View current asset holdings\n")
	b.WriteString("  orders    - View open orders\n")
	b.WriteString("  cancel    - Cancel an order\n")
	b.WriteString("  price     - Get current price\n")
	b.WriteString("  help      - Show this help message\n")
	b.WriteString("  exit      - Exit the bot\n")
	return b.String()
}

// renderOrderSummary 下单结果摘要框
func renderOrderSummary(r *domain.OrderResult) string {
	rows := []string{
		titleStyle.Render("ORDER SUMMARY"),
		fmt.Sprintf("Order ID: %-16d Status: %s", r.OrderID, r.Status),
		fmt.Sprintf("Symbol:   %-16s Side:   %s", r.Symbol, r.Side),
		fmt.Sprintf("Type:     %-16s Qty:    %s", r.Type, r.OrigQuantity),
		fmt.Sprintf("Price:    %-16s Filled: %s", priceOrNA(r), r.ExecutedQuantity),
	}
	if !r.TransactTime.IsZero() {
		rows = append(rows, dimStyle.Render("Time: "+r.TransactTime.Format("2006-01-02 15:04:05")))
	}
	return borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func priceOrNA(r *domain.OrderResult) string {
	if r.Price.IsZero() {
		return "N/A"
	}
	return r.Price.String()
}

// renderBalances 余额列表
func renderBalances(balances domain.BalanceSnapshot) string {
	if len(balances) == 0 {
		return "No assets with balance."
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("ACCOUNT BALANCE"))
	b.WriteString("\n")
	for _, bal := range balances {
		fmt.Fprintf(&b, "%-8s %s  (Free: %s, Locked: %s)\n",
			bal.Asset, bal.Total().StringFixed(8), bal.Free, bal.Locked)
	}
	return b.String()
}

// renderHoldings 持仓明细
func renderHoldings(holdings []services.Holding) string {
	if len(holdings) == 0 {
		return "No assets held."
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("CURRENT HOLDINGS"))
	b.WriteString("\n")
	for _, h := range holdings {
		fmt.Fprintf(&b, "Asset: %s\n  Total:  %s\n  Free:   %s\n  Locked: %s\n",
			h.Asset, h.Total, h.Free, h.Locked)
	}
	return b.String()
}

// renderOpenOrders 挂单列表
func renderOpenOrders(orders []domain.OpenOrder) string {
	if len(orders) == 0 {
		return "No open orders."
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("OPEN ORDERS"))
	b.WriteString("\n")
	for _, o := range orders {
		price := "N/A"
		if !o.Price.IsZero() {
			price = o.Price.String()
		}
		fmt.Fprintf(&b, "#%d  %s %s %s  qty=%s price=%s status=%s\n",
			o.OrderID, o.Symbol, o.Side, o.Type, o.OrigQuantity, price, o.Status)
	}
	return b.String()
}

func renderOK(msg string) string {
	return successStyle.Render("✔ " + msg)
}

func renderErr(err error) string {
	return errorStyle.Render("✘ " + err.Error())
}

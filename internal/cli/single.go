package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Sayantang8/TradeBot/internal/domain"
)

// OrderFlags 单次执行模式下 place 命令的命令行参数
type OrderFlags struct {
	Symbol    string
	Side      string
	Type      string
	Quantity  string
	Price     string
	StopPrice string
}

// RunSingle 单次执行模式：执行一条命令后退出，不进入交互循环。
// 返回的错误直接决定进程退出码。
func (a *App) RunSingle(ctx context.Context, command string, args []string, flags OrderFlags) error {
	switch strings.ToLower(command) {
	case "place":
		req, err := ParseOrderRequest(flags.Symbol, flags.Side, flags.Type, flags.Quantity, flags.Price, flags.StopPrice)
		if err != nil {
			return err
		}
		result, err := a.trading.PlaceOrder(ctx, req)
		if err != nil {
			return err
		}
		a.printPlacedOrder(ctx, result)
		return nil

	case "balance":
		return a.showBalance(ctx)

	case "holdings", "positions":
		return a.showHoldings(ctx)

	case "orders":
		return a.showOrders(ctx)

	case "price":
		if len(args) != 1 {
			return &domain.InvalidInputError{Field: "price", Reason: "usage: price <SYMBOL>"}
		}
		price, err := a.trading.Price(ctx, strings.ToUpper(args[0]))
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Current price for %s: %s\n", strings.ToUpper(args[0]), price)
		return nil

	case "cancel":
		if len(args) != 2 {
			return &domain.InvalidInputError{Field: "cancel", Reason: "usage: cancel <SYMBOL> <ORDER_ID>"}
		}
		orderID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return &domain.InvalidInputError{Field: "order id", Reason: "is not a valid integer: " + args[1]}
		}
		if err := a.trading.CancelOrder(ctx, strings.ToUpper(args[0]), orderID); err != nil {
			return err
		}
		fmt.Fprintln(a.out, renderOK(fmt.Sprintf("Order %d cancelled successfully!", orderID)))
		return nil

	case "help":
		fmt.Fprintln(a.out, renderHelp())
		return nil

	default:
		return &domain.InvalidInputError{Field: "command", Reason: fmt.Sprintf("unknown command %q, type 'help' for available commands", command)}
	}
}

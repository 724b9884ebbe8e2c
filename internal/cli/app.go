package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Sayantang8/TradeBot/internal/domain"
	"github.com/Sayantang8/TradeBot/internal/services"
)

// App 交互式命令分发器。一条命令从读取到完成（含网络调用）
// 严格串行执行，命令之间不共享任何可变状态。
type App struct {
	trading *services.TradingService
	account *services.AccountService
	p       *prompter
	out     io.Writer
}

// NewApp 创建交互式 CLI
func NewApp(trading *services.TradingService, account *services.AccountService, in io.Reader, out io.Writer) *App {
	return &App{
		trading: trading,
		account: account,
		p:       &prompter{in: bufio.NewReader(in), out: out},
		out:     out,
	}
}

// Run 运行交互循环，直到 exit 命令或输入流结束。
// 单条命令的失败只打印错误，不中断循环。
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, renderBanner())
	fmt.Fprintln(a.out, renderHelp())

	for {
		line, err := a.p.readLine("\nEnter command: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(a.out, "Goodbye!")
				return nil
			}
			return err
		}

		cmd := strings.ToLower(line)
		switch cmd {
		case "":
			continue
		case "exit", "quit":
			fmt.Fprintln(a.out, "Goodbye!")
			return nil
		case "help":
			fmt.Fprintln(a.out, renderHelp())
		case "place":
			a.runCommand(func() error { return a.placeInteractive(ctx) })
		case "balance":
			a.runCommand(func() error { return a.showBalance(ctx) })
		case "holdings", "positions":
			a.runCommand(func() error { return a.showHoldings(ctx) })
		case "orders":
			a.runCommand(func() error { return a.showOrders(ctx) })
		case "cancel":
			a.runCommand(func() error { return a.cancelInteractive(ctx) })
		case "price":
			a.runCommand(func() error { return a.priceInteractive(ctx) })
		default:
			fmt.Fprintf(a.out, "Unknown command %q. Type 'help' for available commands.\n", cmd)
		}
	}
}

// runCommand 执行一条命令；EOF 透传，其余错误打印后继续
func (a *App) runCommand(fn func() error) {
	if err := fn(); err != nil {
		if errors.Is(err, io.EOF) {
			return
		}
		fmt.Fprintln(a.out, renderErr(err))
	}
}

func (a *App) placeInteractive(ctx context.Context) error {
	fmt.Fprintln(a.out, titleStyle.Render("PLACE ORDER"))

	symbol, err := a.p.promptString("Enter symbol (e.g. BTCUSDT): ")
	if err != nil {
		return err
	}
	symbol = strings.ToUpper(symbol)

	// 下单前展示当前市价作参考；拿不到也不阻塞流程
	if price, err := a.trading.Price(ctx, symbol); err == nil {
		fmt.Fprintf(a.out, "Current price for %s: %s\n", symbol, price)
	} else {
		fmt.Fprintf(a.out, "Warning: could not get current price: %v\n", err)
	}

	fmt.Fprintln(a.out, "\nOrder side:\n  1. BUY\n  2. SELL")
	sideChoice, err := a.p.promptChoice("Choose side (1 or 2, or 0 to go back): ", 2)
	if err != nil {
		return err
	}
	if sideChoice == 0 {
		return nil
	}
	side := domain.SideBuy
	if sideChoice == 2 {
		side = domain.SideSell
	}

	fmt.Fprintln(a.out, "\nOrder type:\n  1. MARKET\n  2. LIMIT\n  3. STOP_MARKET\n  4. STOP_LIMIT")
	typeChoice, err := a.p.promptChoice("Choose order type (1-4, or 0 to go back): ", 4)
	if err != nil {
		return err
	}
	if typeChoice == 0 {
		return nil
	}
	orderType := [...]domain.OrderType{
		domain.OrderTypeMarket,
		domain.OrderTypeLimit,
		domain.OrderTypeStopMarket,
		domain.OrderTypeStopLimit,
	}[typeChoice-1]

	req := &domain.OrderRequest{Symbol: symbol, Side: side, Type: orderType}

	if req.Quantity, err = a.p.promptDecimal("Enter quantity: "); err != nil {
		return err
	}
	if req.Priced() {
		if req.Price, err = a.p.promptDecimal("Enter price: "); err != nil {
			return err
		}
	}
	if req.Stop() {
		if req.StopPrice, err = a.p.promptDecimal("Enter stop price: "); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.out, "\n"+titleStyle.Render("ORDER CONFIRMATION"))
	fmt.Fprintf(a.out, "Symbol: %s\nSide: %s\nType: %s\nQuantity: %s\n", req.Symbol, req.Side, req.Type, req.Quantity)
	if req.Priced() {
		fmt.Fprintf(a.out, "Price: %s\n", req.Price)
	}
	if req.Stop() {
		fmt.Fprintf(a.out, "Stop price: %s\n", req.StopPrice)
	}

	ok, err := a.p.promptConfirm("Confirm order? (y/n): ")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Order cancelled.")
		return nil
	}

	fmt.Fprintln(a.out, "\nPlacing order...")
	result, err := a.trading.PlaceOrder(ctx, req)
	if err != nil {
		return err
	}
	a.printPlacedOrder(ctx, result)
	return nil
}

// printPlacedOrder 下单成功后的输出。下单回执里的状态/成交量可能滞后，
// 补一次订单详情查询再渲染摘要；查询失败时退回用回执渲染，不影响结果。
func (a *App) printPlacedOrder(ctx context.Context, result *domain.OrderResult) {
	fmt.Fprintln(a.out, renderOK("ORDER PLACED SUCCESSFULLY!"))
	details, err := a.trading.OrderDetails(ctx, result.Symbol, result.OrderID)
	if err != nil {
		fmt.Fprintf(a.out, "Warning: could not fetch order details: %v\n", err)
	} else if details != nil {
		result = details
	}
	fmt.Fprintln(a.out, renderOrderSummary(result))
}

func (a *App) showBalance(ctx context.Context) error {
	balances, err := a.account.NonZeroBalances(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderBalances(balances))
	return nil
}

func (a *App) showHoldings(ctx context.Context) error {
	holdings, err := a.account.Holdings(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderHoldings(holdings))
	return nil
}

func (a *App) showOrders(ctx context.Context) error {
	orders, err := a.trading.OpenOrders(ctx, "")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderOpenOrders(orders))
	return nil
}

func (a *App) cancelInteractive(ctx context.Context) error {
	orders, err := a.trading.OpenOrders(ctx, "")
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No open orders to cancel.")
		return nil
	}

	fmt.Fprintln(a.out, "Open orders:")
	for i, o := range orders {
		fmt.Fprintf(a.out, "  %d. Order ID %d - %s %s %s\n", i+1, o.OrderID, o.Symbol, o.Side, o.Type)
	}

	choice, err := a.p.promptChoice("Enter order number to cancel (or 0 to go back): ", len(orders))
	if err != nil {
		return err
	}
	if choice == 0 {
		return nil
	}
	target := orders[choice-1]

	ok, err := a.p.promptConfirm(fmt.Sprintf("Cancel order %d? (y/n): ", target.OrderID))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancellation aborted.")
		return nil
	}

	if err := a.trading.CancelOrder(ctx, target.Symbol, target.OrderID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderOK(fmt.Sprintf("Order %d cancelled successfully!", target.OrderID)))
	return nil
}

func (a *App) priceInteractive(ctx context.Context) error {
	symbol, err := a.p.promptString("Enter symbol (e.g. BTCUSDT): ")
	if err != nil {
		return err
	}
	symbol = strings.ToUpper(symbol)
	price, err := a.trading.Price(ctx, symbol)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Current price for %s: %s\n", symbol, price)
	return nil
}

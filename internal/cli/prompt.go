package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Sayantang8/TradeBot/internal/domain"
)

// prompter 交互输入读取。所有读取都是阻塞的单行读取，
// EOF（Ctrl+D / 管道结束）向上返回 io.EOF 结束会话。
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func (p *prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptString 读取必填字符串，空输入时重复提示
func (p *prompter) promptString(prompt string) (string, error) {
	for {
		v, err := p.readLine(prompt)
		if err != nil {
			return "", err
		}
		if v != "" {
			return v, nil
		}
		fmt.Fprintln(p.out, "This field is required. Please enter a value.")
	}
}

// promptDecimal 读取正的十进制数
func (p *prompter) promptDecimal(prompt string) (decimal.Decimal, error) {
	for {
		v, err := p.readLine(prompt)
		if err != nil {
			return decimal.Zero, err
		}
		d, perr := decimal.NewFromString(v)
		if perr != nil || !d.IsPositive() {
			fmt.Fprintln(p.out, "Invalid input. Please enter a positive number.")
			continue
		}
		return d, nil
	}
}

// promptChoice 读取 [1, max] 范围内的菜单编号，0 表示返回
func (p *prompter) promptChoice(prompt string, max int) (int, error) {
	for {
		v, err := p.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, perr := strconv.Atoi(v)
		if perr != nil || n < 0 || n > max {
			fmt.Fprintln(p.out, "Invalid choice.")
			continue
		}
		return n, nil
	}
}

// promptConfirm y/n 确认
func (p *prompter) promptConfirm(prompt string) (bool, error) {
	v, err := p.readLine(prompt)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(v, "y") || strings.EqualFold(v, "yes"), nil
}

// ParseOrderRequest 从命令行参数构建订单请求（单次执行模式）。
// 解析失败返回 *domain.InvalidInputError，之后才进入校验流程。
func ParseOrderRequest(symbol, side, orderType, quantity, price, stopPrice string) (*domain.OrderRequest, error) {
	req := &domain.OrderRequest{Symbol: strings.ToUpper(strings.TrimSpace(symbol))}

	var err error
	if req.Side, err = domain.ParseSide(side); err != nil {
		return nil, err
	}
	if req.Type, err = domain.ParseOrderType(orderType); err != nil {
		return nil, err
	}

	if req.Quantity, err = parsePositiveDecimal("quantity", quantity, true); err != nil {
		return nil, err
	}
	if req.Price, err = parsePositiveDecimal("price", price, req.Priced()); err != nil {
		return nil, err
	}
	if req.StopPrice, err = parsePositiveDecimal("stop price", stopPrice, req.Stop()); err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func parsePositiveDecimal(field, value string, required bool) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			return decimal.Zero, &domain.InvalidInputError{Field: field, Reason: "is required"}
		}
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, &domain.InvalidInputError{Field: field, Reason: "is not a valid number: " + value}
	}
	if !d.IsPositive() {
		return decimal.Zero, &domain.InvalidInputError{Field: field, Reason: "must be greater than zero"}
	}
	return d, nil
}

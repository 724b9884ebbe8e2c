package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Sayantang8/TradeBot/internal/cli"
	"github.com/Sayantang8/TradeBot/internal/exchange"
	"github.com/Sayantang8/TradeBot/internal/services"
	"github.com/Sayantang8/TradeBot/pkg/config"
	"github.com/Sayantang8/TradeBot/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "config file path (YAML, optional)")
	interactive := flag.Bool("interactive", false, "run in interactive mode")
	flag.BoolVar(interactive, "i", false, "run in interactive mode (shorthand)")

	var orderFlags cli.OrderFlags
	flag.StringVar(&orderFlags.Symbol, "symbol", "", "trading symbol (e.g. BTCUSDT)")
	flag.StringVar(&orderFlags.Symbol, "s", "", "trading symbol (shorthand)")
	flag.StringVar(&orderFlags.Side, "side", "", "order side: BUY or SELL")
	flag.StringVar(&orderFlags.Type, "type", "", "order type: MARKET, LIMIT, STOP_LIMIT or STOP_MARKET")
	flag.StringVar(&orderFlags.Type, "t", "", "order type (shorthand)")
	flag.StringVar(&orderFlags.Quantity, "quantity", "", "order quantity")
	flag.StringVar(&orderFlags.Quantity, "q", "", "order quantity (shorthand)")
	flag.StringVar(&orderFlags.Price, "price", "", "order price (for LIMIT and STOP_LIMIT orders)")
	flag.StringVar(&orderFlags.Price, "p", "", "order price (shorthand)")
	flag.StringVar(&orderFlags.StopPrice, "stop-price", "", "stop price (for STOP_LIMIT and STOP_MARKET orders)")
	flag.Parse()

	// .env 可选：没有就直接用进程环境变量
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		OutputFile: cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	gw := exchange.NewBinanceGateway(cfg.APIKey, cfg.APISecret, cfg.Testnet)
	if err := probeConnection(ctx, gw); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to exchange: %v\n", err)
		os.Exit(1)
	}

	trading := services.NewTradingService(gw, cfg.Trading)
	account := services.NewAccountService(gw)
	app := cli.NewApp(trading, account, os.Stdin, os.Stdout)

	// 没有子命令且没有显式单次参数时进入交互模式
	args := flag.Args()
	if *interactive || (len(args) == 0 && orderFlags.Symbol == "") {
		if err := app.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// 单次执行模式：`tradebot <command> [args]`，或纯 flags 形式的 place
	command := "place"
	var cmdArgs []string
	if len(args) > 0 {
		command = args[0]
		cmdArgs = args[1:]
	}
	if err := app.RunSingle(ctx, command, cmdArgs, orderFlags); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

// probeConnection 启动时验证连通性与账户访问权限
func probeConnection(ctx context.Context, gw exchange.Gateway) error {
	serverTime, err := gw.ServerTime(ctx)
	if err != nil {
		return err
	}
	logrus.Infof("connected to Binance Spot Testnet, server time: %s", serverTime.Format("2006-01-02 15:04:05"))

	if _, err := gw.Balances(ctx); err != nil {
		return err
	}
	logrus.Info("account access verified")
	return nil
}

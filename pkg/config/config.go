package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// TradingLimits 下单前校验的可调参数。
// ±20% 限价区间与市价单的 1% 余额缓冲是产品约定，不写死在代码里。
type TradingLimits struct {
	// PriceBandPct 限价允许偏离市价的比例（0.20 = ±20%），区间两端包含
	PriceBandPct float64 `yaml:"price_band_pct"`
	// MarketBuyBufferPct 市价买单余额检查的价格缓冲（0.01 = 1%）
	MarketBuyBufferPct float64 `yaml:"market_buy_buffer_pct"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level"`       // debug, info, warn, error
	File       string `yaml:"file"`        // 为空则只输出到控制台
	MaxSize    int    `yaml:"max_size"`    // 单个日志文件最大大小（MB）
	MaxBackups int    `yaml:"max_backups"` // 保留的旧日志文件数量
	MaxAge     int    `yaml:"max_age"`     // 保留天数
	Compress   bool   `yaml:"compress"`
}

// Config 应用配置。凭证只从环境变量读取，文件里只放非敏感参数。
type Config struct {
	APIKey    string        `yaml:"-"`
	APISecret string        `yaml:"-"`
	Testnet   bool          `yaml:"-"`
	Debug     bool          `yaml:"-"`
	Trading   TradingLimits `yaml:"trading"`
	Log       LogConfig     `yaml:"log"`
}

const (
	DefaultPriceBandPct       = 0.20
	DefaultMarketBuyBufferPct = 0.01
)

// ApplyDefaults 填充未设置的默认值
func (c *Config) ApplyDefaults() {
	if c.Trading.PriceBandPct <= 0 {
		c.Trading.PriceBandPct = DefaultPriceBandPct
	}
	if c.Trading.MarketBuyBufferPct < 0 {
		c.Trading.MarketBuyBufferPct = DefaultMarketBuyBufferPct
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "logs/bot.log"
	}
	if c.Log.MaxSize <= 0 {
		c.Log.MaxSize = 50
	}
	if c.Log.MaxBackups <= 0 {
		c.Log.MaxBackups = 3
	}
	if c.Log.MaxAge <= 0 {
		c.Log.MaxAge = 7
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.APIKey == "" || c.APISecret == "" {
		return errors.New("API credentials not found: set BINANCE_API_KEY and BINANCE_API_SECRET (see .env.example)")
	}
	if c.Trading.PriceBandPct <= 0 || c.Trading.PriceBandPct >= 1 {
		return errors.Errorf("trading.price_band_pct must be in (0, 1), got %v", c.Trading.PriceBandPct)
	}
	if c.Trading.MarketBuyBufferPct < 0 || c.Trading.MarketBuyBufferPct >= 1 {
		return errors.Errorf("trading.market_buy_buffer_pct must be in [0, 1), got %v", c.Trading.MarketBuyBufferPct)
	}
	return nil
}

// Load 加载配置：先读可选的 YAML 文件，再用环境变量覆盖凭证和开关。
// path 为空时只使用环境变量和默认值。
func Load(path string) (*Config, error) {
	cfg := &Config{
		// 没有显式关闭时默认使用测试网，避免误操作真实资金
		Testnet: envBool("BINANCE_TESTNET", true),
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config file %s", path)
		}
	}

	cfg.APIKey = strings.TrimSpace(os.Getenv("BINANCE_API_KEY"))
	cfg.APISecret = strings.TrimSpace(os.Getenv("BINANCE_API_SECRET"))
	cfg.Debug = envBool("DEBUG_MODE", false)
	if cfg.Debug {
		cfg.Log.Level = "debug"
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envBool 读取布尔环境变量，未设置或无法解析时返回默认值
func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return def
	}
	return b
}

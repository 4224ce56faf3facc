package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8000）

	JWTSecret string // JWT署名シークレット

	BraintreeEnv        string // sandbox/production
	BraintreeMerchantID string
	BraintreePublicKey  string
	BraintreePrivateKey string

	GoEnv string // dev/prod
	FEURL string // フロントURL（CORSで使う）

	CookieSecure bool // セッションCookieのSecure属性
}

// Loadは環境変数
// DB接続はinfra/dbが環境変数から直接読む。
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8000"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		BraintreeEnv:        getenv("BRAINTREE_ENV", "sandbox"),
		BraintreeMerchantID: os.Getenv("BRAINTREE_MERCHANT_ID"),
		BraintreePublicKey:  os.Getenv("BRAINTREE_PUBLIC_KEY"),
		BraintreePrivateKey: os.Getenv("BRAINTREE_PRIVATE_KEY"),

		GoEnv: getenv("GO_ENV", "dev"),
		FEURL: os.Getenv("FE_URL"),

		CookieSecure: getenvBool("COOKIE_SECURE", true),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.BraintreeMerchantID == "" {
		return Config{}, fmt.Errorf("BRAINTREE_MERCHANT_ID is required")
	}
	if cfg.BraintreePublicKey == "" {
		return Config{}, fmt.Errorf("BRAINTREE_PUBLIC_KEY is required")
	}
	if cfg.BraintreePrivateKey == "" {
		return Config{}, fmt.Errorf("BRAINTREE_PRIVATE_KEY is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

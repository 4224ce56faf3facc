package gateway

import (
	"context"
	"fmt"

	"app/internal/config"
	"app/internal/usecase"

	braintree "github.com/braintree-go/braintree-go"
	"github.com/shopspring/decimal"
)

// Braintree実装のPaymentGateway。
type BraintreeGateway struct {
	bt *braintree.Braintree
}

// DI
func NewBraintreeGateway(cfg config.Config) *BraintreeGateway {
	env := braintree.Sandbox
	if cfg.BraintreeEnv == "production" {
		env = braintree.Production
	}

	return &BraintreeGateway{
		bt: braintree.New(
			env,
			cfg.BraintreeMerchantID,
			cfg.BraintreePublicKey,
			cfg.BraintreePrivateKey,
		),
	}
}

func (g *BraintreeGateway) ClientToken(ctx context.Context, userID int64) (string, error) {
	token, err := g.bt.ClientToken().Generate(ctx)
	if err != nil {
		return "", fmt.Errorf("braintree client token: %w", err)
	}
	return token, nil
}

// 売上の確定（submitForSettlement=true で即時）
func (g *BraintreeGateway) Sale(ctx context.Context, nonce string, amount decimal.Decimal) (usecase.SaleResult, error) {
	amount = amount.Round(2)

	tx, err := g.bt.Transaction().Create(ctx, &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             braintree.NewDecimal(amount.Shift(2).IntPart(), 2),
		PaymentMethodNonce: nonce,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	})
	if err != nil {
		return usecase.SaleResult{}, fmt.Errorf("braintree sale: %w", err)
	}

	captured := amount
	if tx.Amount != nil {
		captured = decimal.New(tx.Amount.Unscaled, -int32(tx.Amount.Scale))
	}

	return usecase.SaleResult{
		TransactionID: tx.Id,
		Amount:        captured,
		Status:        string(tx.Status),
		Success:       true,
	}, nil
}

package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
)

// 決済ゲートウェイへの約束。
// 金額はdecimalでやり取りする（クライアント計算のfloatはここで丸める）。
type PaymentGateway interface {
	//ドロップインUI用のワンタイムトークンを発行する
	ClientToken(ctx context.Context, userID int64) (string, error)
	//nonceと金額で売上を確定する（即時セトルメント）
	Sale(ctx context.Context, nonce string, amount decimal.Decimal) (SaleResult, error)
}

// ゲートウェイが返した取引結果
type SaleResult struct {
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	Success       bool            `json:"success"`
}

type PaymentUsecase struct {
	gateway PaymentGateway
}

// DI
func NewPaymentUsecase(gateway PaymentGateway) *PaymentUsecase {
	return &PaymentUsecase{gateway: gateway}
}

type ClientTokenOutput struct {
	ClientToken string `json:"clientToken"`
}

func (u *PaymentUsecase) GenerateToken(ctx context.Context, userID int64) (ClientTokenOutput, error) {
	if userID <= 0 {
		return ClientTokenOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	token, err := u.gateway.ClientToken(ctx, userID)
	if err != nil {
		//ゲートウェイのエラーはそのまま伝える
		return ClientTokenOutput{}, NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return ClientTokenOutput{ClientToken: token}, nil
}

type ProcessPaymentInput struct {
	PaymentMethodNonce string  `json:"paymentMethodNonce"`
	Amount             float64 `json:"amount"`
}

// 金額はクライアント計算の合計をそのまま使う（サーバー側の再検証はしない。
// 観測された信頼境界のまま）。小数2桁に丸めてゲートウェイへ渡す。
func (u *PaymentUsecase) Process(ctx context.Context, userID int64, in ProcessPaymentInput) (SaleResult, error) {
	if userID <= 0 {
		return SaleResult{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.PaymentMethodNonce) == "" {
		return SaleResult{}, NewHTTPError(http.StatusBadRequest, "Payment method nonce is required")
	}
	if in.Amount <= 0 {
		return SaleResult{}, NewHTTPError(http.StatusBadRequest, "Amount must be > 0")
	}

	amount := decimal.NewFromFloat(in.Amount).Round(2)

	result, err := u.gateway.Sale(ctx, in.PaymentMethodNonce, amount)
	if err != nil {
		return SaleResult{}, NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return result, nil
}

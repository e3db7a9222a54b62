package dto

import (
	"time"

	"github.com/perna2k6/pernateste/internal/domain/entity"
)

// CreateTransactionRequest represents the API request for starting a checkout
type CreateTransactionRequest struct {
	Name       string  `json:"name" binding:"required"`
	Email      string  `json:"email" binding:"required"`
	Document   string  `json:"document" binding:"required"`
	Phone      string  `json:"phone" binding:"required"`
	PlanCode   string  `json:"planCode" binding:"required"`
	PlanTitle  string  `json:"planTitle" binding:"required"`
	Price      int64   `json:"price" binding:"required"`
	UserID     *uint64 `json:"userId,omitempty"`
	ExternalID string  `json:"externalId,omitempty"`
}

// ToCheckoutForm maps the request into the domain checkout form. Domain
// validation runs there; binding tags only reject missing fields early.
func (r *CreateTransactionRequest) ToCheckoutForm() *entity.CheckoutForm {
	return &entity.CheckoutForm{
		Name:      r.Name,
		Email:     r.Email,
		Document:  r.Document,
		Phone:     r.Phone,
		PlanCode:  r.PlanCode,
		PlanTitle: r.PlanTitle,
		Price:     r.Price,
		UserID:    r.UserID,
	}
}

// PaymentDataResponse carries the gateway payload needed to display a charge
type PaymentDataResponse struct {
	Code         string `json:"code"`
	QRCodeBase64 string `json:"qrCodeBase64,omitempty"`
	PaymentURL   string `json:"paymentUrl,omitempty"`
}

// TransactionResponse represents the API view of a transaction
type TransactionResponse struct {
	GatewayID   string               `json:"gatewayId"`
	ExternalID  string               `json:"externalId"`
	Amount      int64                `json:"amount"`
	Status      string               `json:"status"`
	Method      string               `json:"method"`
	PlanCode    string               `json:"planCode"`
	PlanTitle   string               `json:"planTitle"`
	PaymentData *PaymentDataResponse `json:"paymentData,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// FromTransaction maps a transaction entity to its API view. Internal ids and
// the buyer snapshot stay server-side.
func FromTransaction(txn *entity.Transaction) TransactionResponse {
	resp := TransactionResponse{
		GatewayID:  txn.GatewayID,
		ExternalID: txn.ExternalID,
		Amount:     txn.Amount,
		Status:     string(txn.Status),
		Method:     txn.Method,
		PlanCode:   txn.PlanCode,
		PlanTitle:  txn.PlanTitle,
		CreatedAt:  txn.CreatedAt,
		UpdatedAt:  txn.UpdatedAt,
	}
	if txn.PaymentData != nil {
		resp.PaymentData = &PaymentDataResponse{
			Code:         txn.PaymentData.Code,
			QRCodeBase64: txn.PaymentData.QRCodeBase64,
			PaymentURL:   txn.PaymentData.PaymentURL,
		}
	}
	return resp
}

package dto

import (
	"time"

	"github.com/spec-kit/refund-service/internal/domain"
	"github.com/spec-kit/refund-service/internal/service"
	"github.com/spec-kit/refund-service/internal/validation"
)

// Bounds of the refunds.amount NUMERIC(12, 2) column.
const (
	MinRefundAmount = 0.01
	MaxRefundAmount = 9999999999.99
)

// RefundCreateSchema validates POST /refunds bodies. userId is deliberately absent.
var RefundCreateSchema = validation.Schema{
	Mode: validation.Strict,
	Fields: []validation.Field{
		{Name: "name", Kind: validation.KindString, Message: "Informe o nome da solicitação", Rules: []validation.Rule{
			validation.Trim{},
			validation.MinLength{N: 3, Message: "Informe o nome da solicitação"},
		}},
		{Name: "category", Kind: validation.KindString, Message: "Informe a categoria", Rules: []validation.Rule{
			validation.OneOf{Values: categoryNames(), Message: "Categoria inválida"},
		}},
		{Name: "amount", Kind: validation.KindNumber, Message: "Informe o valor", Rules: []validation.Rule{
			validation.Positive{Message: "Valor tem que ser positivo"},
			validation.Min{Limit: MinRefundAmount, Message: "Valor mínimo é 0,01"},
			validation.Max{Limit: MaxRefundAmount, Message: "Valor excede o limite permitido"},
		}},
		{Name: "filename", Kind: validation.KindString, Message: "Informe o nome do arquivo", Rules: []validation.Rule{
			validation.MinLength{N: 20, Message: "Informe o nome do arquivo"},
		}},
	},
}

func categoryNames() []string {
	categories := domain.RefundCategories()
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, string(c))
	}
	return names
}

// RefundCreateInput converts validated values.
func RefundCreateInput(values validation.Values) service.RefundCreateInput {
	return service.RefundCreateInput{
		Name:     values.String("name"),
		Category: domain.RefundCategory(values.String("category")),
		Amount:   values.Float("amount"),
		Filename: values.String("filename"),
	}
}

// RefundResponse is the public representation of a refund.
type RefundResponse struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Category  domain.RefundCategory `json:"category"`
	Amount    float64               `json:"amount"`
	Filename  string                `json:"filename"`
	UserID    string                `json:"userId"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// Pagination describes the page returned by a listing.
type Pagination struct {
	Page         int `json:"page"`
	PerPage      int `json:"perPage"`
	TotalRecords int `json:"totalRecords"`
	TotalPages   int `json:"totalPages"`
}

// RefundListResponse is returned by GET /refunds.
type RefundListResponse struct {
	Refunds    []RefundResponse `json:"refunds"`
	Pagination Pagination       `json:"pagination"`
}

// UploadResponse is returned by POST /uploads.
type UploadResponse struct {
	Filename string `json:"filename"`
}

// NewRefundResponse maps a domain refund.
func NewRefundResponse(refund *domain.Refund) RefundResponse {
	return RefundResponse{
		ID:        refund.ID,
		Name:      refund.Name,
		Category:  refund.Category,
		Amount:    refund.Amount,
		Filename:  refund.Filename,
		UserID:    refund.UserID,
		CreatedAt: refund.CreatedAt,
		UpdatedAt: refund.UpdatedAt,
	}
}

// NewRefundListResponse maps a page of refunds.
func NewRefundListResponse(page *service.RefundPage) RefundListResponse {
	items := make([]RefundResponse, 0, len(page.Refunds))
	for i := range page.Refunds {
		items = append(items, NewRefundResponse(&page.Refunds[i]))
	}
	return RefundListResponse{
		Refunds: items,
		Pagination: Pagination{
			Page:         page.Page,
			PerPage:      page.PerPage,
			TotalRecords: page.TotalRecords,
			TotalPages:   page.TotalPages,
		},
	}
}

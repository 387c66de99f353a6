package domain

import "time"

// RefundCategory classifies what a refund request is for.
type RefundCategory string

const (
	CategoryFood          RefundCategory = "food"
	CategoryOthers        RefundCategory = "others"
	CategoryServices      RefundCategory = "services"
	CategoryTransport     RefundCategory = "transport"
	CategoryAccommodation RefundCategory = "accommodation"
)

// RefundCategories returns the fixed category set in display order.
func RefundCategories() []RefundCategory {
	return []RefundCategory{
		CategoryFood,
		CategoryOthers,
		CategoryServices,
		CategoryTransport,
		CategoryAccommodation,
	}
}

// Refund is a reimbursement request submitted by an employee.
type Refund struct {
	ID        string
	Name      string
	Category  RefundCategory
	Amount    float64
	Filename  string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RefundFilter narrows refund listings.
type RefundFilter struct {
	Name   string
	Offset int
	Limit  int
}

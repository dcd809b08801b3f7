package mapping

import (
	"github.com/feastly/feastly_backend/internal/core/domain"
	"github.com/feastly/feastly_backend/internal/models"
)

// ToModelOrder converts a domain Order to its order row and item rows.
func ToModelOrder(d domain.Order) (models.Order, []models.OrderItem) {
	order := models.Order{
		OrderID:     d.OrderID,
		UserID:      d.UserID,
		Currency:    d.Currency,
		TotalPrice:  d.TotalPrice,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	items := make([]models.OrderItem, len(d.Items))
	for i, item := range d.Items {
		items[i] = models.OrderItem{
			OrderID:   d.OrderID,
			DishID:    item.DishID,
			DishName:  item.DishName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return order, items
}

// ToDomainOrder converts an order row and its item rows to a domain Order
func ToDomainOrder(m models.Order, items []models.OrderItem) domain.Order {
	order := domain.Order{
		OrderID:     m.OrderID,
		UserID:      m.UserID,
		Currency:    m.Currency,
		TotalPrice:  m.TotalPrice,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	order.Items = make([]domain.OrderItem, len(items))
	for i, item := range items {
		order.Items[i] = domain.OrderItem{
			DishID:    item.DishID,
			DishName:  item.DishName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return order
}

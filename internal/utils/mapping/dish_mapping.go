package mapping

import (
	"github.com/feastly/feastly_backend/internal/core/domain"
	"github.com/feastly/feastly_backend/internal/models"
)

// ToModelDish converts a domain Dish to a model Dish
func ToModelDish(d domain.Dish) models.Dish {
	return models.Dish{
		DishID:         d.DishID,
		Name:           d.Name,
		Category:       d.Category,
		Cuisine:        d.Cuisine,
		Type:           d.Type,
		Description:    d.Description,
		Images:         d.Images,
		CoverImage:     d.CoverImage,
		UnitPrice:      d.UnitPrice,
		Currency:       d.Currency,
		MainUnitPrice:  d.MainUnitPrice,
		Stock:          d.Stock,
		RatingsAverage: d.RatingsAverage,
		RatingsCount:   d.RatingsCount,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDish converts a model Dish to a domain Dish
func ToDomainDish(m models.Dish) domain.Dish {
	return domain.Dish{
		DishID:         m.DishID,
		Name:           m.Name,
		Category:       m.Category,
		Cuisine:        m.Cuisine,
		Type:           m.Type,
		Description:    m.Description,
		Images:         m.Images,
		CoverImage:     m.CoverImage,
		UnitPrice:      m.UnitPrice,
		Currency:       m.Currency,
		MainUnitPrice:  m.MainUnitPrice,
		Stock:          m.Stock,
		RatingsAverage: m.RatingsAverage,
		RatingsCount:   m.RatingsCount,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDishView converts a full domain Dish into an unprojected DishView.
func ToDishView(d domain.Dish) domain.DishView {
	return domain.DishView{
		DishID:         d.DishID,
		Name:           &d.Name,
		Category:       &d.Category,
		Cuisine:        &d.Cuisine,
		Type:           &d.Type,
		Description:    &d.Description,
		Images:         d.Images,
		CoverImage:     &d.CoverImage,
		UnitPrice:      &d.UnitPrice,
		Currency:       &d.Currency,
		MainUnitPrice:  &d.MainUnitPrice,
		Stock:          &d.Stock,
		RatingsAverage: &d.RatingsAverage,
		RatingsCount:   &d.RatingsCount,
	}
}

package postgres

import (
	"time"

	"github.com/sakurakitchen/ordering-system/internal/core/domain"
)

type userRecord struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:120;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:120;not null"`
	Role         string `gorm:"size:20;not null;default:customer"`
	Phone        string `gorm:"size:40"`
	Address      string `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

func userToRecord(u *domain.User) *userRecord {
	return &userRecord{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Phone:        u.Phone,
		Address:      u.Address,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func recordToUser(r *userRecord) *domain.User {
	return &domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         domain.Role(r.Role),
		Phone:        r.Phone,
		Address:      r.Address,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type menuItemRecord struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:120;not null"`
	Category    string `gorm:"size:40;index;not null"`
	Description string `gorm:"size:500"`
	Ingredients string `gorm:"size:500"`
	Price       float64
	Image       string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (menuItemRecord) TableName() string { return "menu_items" }

func menuItemToRecord(m *domain.MenuItem) *menuItemRecord {
	return &menuItemRecord{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		Description: m.Description,
		Ingredients: m.Ingredients,
		Price:       m.Price,
		Image:       m.Image,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func recordToMenuItem(r *menuItemRecord) *domain.MenuItem {
	return &domain.MenuItem{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		Ingredients: r.Ingredients,
		Price:       r.Price,
		Image:       r.Image,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type orderRecord struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Status    string `gorm:"size:20;index;not null"`
	Total     float64
	Items     []orderItemRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID         uint `gorm:"primaryKey"`
	OrderID    uint `gorm:"index;not null"`
	MenuItemID uint `gorm:"not null"`
	Quantity   int  `gorm:"not null"`
	// Unit price is copied from the catalog at order time; later menu edits
	// must not change a placed order.
	UnitPrice float64
}

func (orderItemRecord) TableName() string { return "order_items" }

func orderToRecord(o *domain.Order) *orderRecord {
	rec := &orderRecord{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    string(o.Status),
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	for _, it := range o.Items {
		rec.Items = append(rec.Items, orderItemRecord{
			ID:         it.ID,
			OrderID:    it.OrderID,
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
		})
	}
	return rec
}

func recordToOrder(r *orderRecord) *domain.Order {
	o := &domain.Order{
		ID:        r.ID,
		UserID:    r.UserID,
		Status:    domain.OrderStatus(r.Status),
		Total:     r.Total,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	for _, it := range r.Items {
		o.Items = append(o.Items, domain.OrderItem{
			ID:         it.ID,
			OrderID:    it.OrderID,
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
		})
	}
	return o
}

package handler

import "github.com/sakurakitchen/ordering-system/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=2"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// --- Menu ---

type menuItemRequest struct {
	Name        string  `json:"name"        validate:"required,min=2"`
	Category    string  `json:"category"    validate:"required"`
	Description string  `json:"description" validate:"required,min=10"`
	Ingredients string  `json:"ingredients"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Image       string  `json:"image"`
}

// --- Orders ---

// orderLineRequest accepts menu_item_id for the line reference. Any price the
// client tries to submit per line is not even bound; the catalog decides.
type orderLineRequest struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}

type createOrderRequest struct {
	Items []orderLineRequest `json:"items"`
	Total float64            `json:"total"`
}

type statusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// --- Users ---

type updateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

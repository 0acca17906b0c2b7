package response

import "github.com/imaa0/Inventory-Management/internal/domain"

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

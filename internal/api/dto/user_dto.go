package dto

import (
	"time"

	"github.com/spec-kit/refund-service/internal/domain"
	"github.com/spec-kit/refund-service/internal/validation"
)

// SessionSchema validates POST /sessions bodies.
var SessionSchema = validation.Schema{
	Mode: validation.Strict,
	Fields: []validation.Field{
		{Name: "email", Kind: validation.KindString, Message: "Email inválido", Rules: []validation.Rule{
			validation.Trim{},
			validation.Email{Message: "Email inválido"},
		}},
		{Name: "password", Kind: validation.KindString, Message: "Senha é obrigatória"},
	},
}

// UserCreateSchema validates POST /users bodies.
var UserCreateSchema = validation.Schema{
	Mode: validation.Strict,
	Fields: []validation.Field{
		{Name: "name", Kind: validation.KindString, Message: "Nome é obrigatório", Rules: []validation.Rule{
			validation.Trim{},
			validation.MinLength{N: 3, Message: "Nome é obrigatório"},
		}},
		{Name: "email", Kind: validation.KindString, Message: "Email inválido", Rules: []validation.Rule{
			validation.Trim{},
			validation.Email{Message: "Email inválido"},
		}},
		{Name: "password", Kind: validation.KindString, Message: "Senha deve ter no mínimo 6 caracteres", Rules: []validation.Rule{
			validation.MinLength{N: 6, Message: "Senha deve ter no mínimo 6 caracteres"},
		}},
		{Name: "role", Kind: validation.KindString, Default: string(domain.RoleEmployee), Rules: []validation.Rule{
			validation.OneOf{Values: []string{string(domain.RoleEmployee), string(domain.RoleManager)}},
		}},
	},
}

// UserResponse is the public representation of a user. It never carries the password hash.
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// SessionResponse is returned by POST /sessions.
type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

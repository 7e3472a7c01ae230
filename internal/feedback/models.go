package feedback

import (
	"errors"
	"time"
)

var ErrUnavailable = errors.New("feedback storage unavailable")

type Feedback struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"omitempty,max=120"`
	Email     string    `json:"email" validate:"omitempty,email"`
	Role      string    `json:"role" validate:"omitempty,oneof=guide client"`
	Message   string    `json:"message" validate:"required,max=4000"`
	Rating    int       `json:"rating" validate:"omitempty,min=1,max=5"`
	Lang      string    `json:"lang" validate:"omitempty,oneof=it en"`
	CreatedAt time.Time `json:"created_at"`
}

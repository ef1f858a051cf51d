package exchange

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// UserRequest asks for the attributes of one user.
type UserRequest struct {
	Username string `json:"username" validate:"required"`
}

// UsersRequest asks for the attributes of a list of users.
type UsersRequest struct {
	Users []string `json:"users" validate:"min=1"`
}

// UpdatedUsersRequest asks which users changed since a point in time. An
// empty Users list means all users; a nil Since is sent as null.
type UpdatedUsersRequest struct {
	Users []string   `json:"users"`
	Since *Timestamp `json:"since"`
}

var requestValidator = validator.New()

// Validate checks the invariants the exchange enforces on incoming requests.
// Builders never call it.
func Validate(request interface{}) error {
	if err := requestValidator.Struct(request); err != nil {
		return errors.Wrap(err, "invalid exchange request")
	}
	return nil
}

package domain

import (
	"context"
	"time"
)

// Account domain errors.
var (
	ErrUserNotFound    = &Error{Code: ENOTFOUND, Message: "User not found"}
	ErrEmailTaken      = &Error{Code: ECONFLICT, Message: "Email is already registered"}
	ErrUsernameTaken   = &Error{Code: ECONFLICT, Message: "Username is already taken"}
	ErrBadCredentials  = &Error{Code: EUNAUTHORIZED, Message: "Invalid username or password"}
	ErrAddressNotFound = &Error{Code: ENOTFOUND, Message: "Address not found"}
	ErrCardNotFound    = &Error{Code: ENOTFOUND, Message: "Credit card not found"}
	ErrUserHasOrders   = &Error{Code: ECONFLICT, Message: "Users with orders cannot be deleted"}
)

// User is an account holder.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	IsActive     bool
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Address is a user-owned delivery address. At most one address per user has
// IsDefault set; setting a new default clears the others first.
type Address struct {
	ID          int64
	UserID      int64
	Name        string
	FullAddress string
	City        string
	PostalCode  string
	Phone       string
	IsDefault   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreditCard is a user-owned payment instrument. The same single-default
// invariant as Address applies.
type CreditCard struct {
	ID          int64
	UserID      int64
	Name        string
	CardNumber  string
	CardHolder  string
	ExpiryMonth int32
	ExpiryYear  int32
	IsDefault   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MaskedNumber returns the card number with all but the last four digits hidden.
func (c *CreditCard) MaskedNumber() string {
	if len(c.CardNumber) <= 4 {
		return c.CardNumber
	}
	return "**** **** **** " + c.CardNumber[len(c.CardNumber)-4:]
}

// UserStore provides account persistence.
type UserStore interface {
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, u User) (*User, error)
	UpdateUser(ctx context.Context, u User) error
	DeleteUser(ctx context.Context, id int64) error
	ListUsers(ctx context.Context) ([]User, error)
	CountOrdersForUser(ctx context.Context, userID int64) (int64, error)
}

// AddressStore provides address persistence. CreateAddress and
// SetDefaultAddress must clear the user's other defaults in the same
// transaction when the new address is default.
type AddressStore interface {
	GetAddress(ctx context.Context, id int64) (*Address, error)
	ListAddressesForUser(ctx context.Context, userID int64) ([]Address, error)
	CreateAddress(ctx context.Context, a Address) (*Address, error)
	DeleteAddress(ctx context.Context, id int64) error
	SetDefaultAddress(ctx context.Context, userID, addressID int64) error
}

// CardStore provides payment card persistence with the same default
// semantics as AddressStore.
type CardStore interface {
	GetCard(ctx context.Context, id int64) (*CreditCard, error)
	ListCardsForUser(ctx context.Context, userID int64) ([]CreditCard, error)
	CreateCard(ctx context.Context, c CreditCard) (*CreditCard, error)
	DeleteCard(ctx context.Context, id int64) error
	SetDefaultCard(ctx context.Context, userID, cardID int64) error
}

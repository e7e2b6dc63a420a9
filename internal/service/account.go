package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ketenci/carsi/internal/auth"
	"github.com/ketenci/carsi/internal/domain"
)

// AccountService handles signup, login, and the user's addresses and cards.
type AccountService struct {
	users     domain.UserStore
	addresses domain.AddressStore
	cards     domain.CardStore
	notifier  domain.Notifier
	logger    *slog.Logger
}

func NewAccountService(
	users domain.UserStore,
	addresses domain.AddressStore,
	cards domain.CardStore,
	notifier domain.Notifier,
	logger *slog.Logger,
) *AccountService {
	return &AccountService{
		users:     users,
		addresses: addresses,
		cards:     cards,
		notifier:  notifier,
		logger:    logger,
	}
}

// Signup registers a new account. The email is lowercased before storage so
// lookups are case-insensitive.
func (s *AccountService) Signup(ctx context.Context, username, email, password string) (*domain.User, error) {
	const op = "account.signup"

	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" {
		return nil, domain.Invalid(op, "Username and email are required")
	}
	if len(password) < 8 {
		return nil, domain.Invalid(op, "Password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to hash password")
	}

	user, err := s.users.CreateUser(ctx, domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx,
		fmt.Sprintf("New user registered: %s", user.Username),
		fmt.Sprintf("/admin/users/%d", user.ID),
		"user-plus", "green")
	s.logger.Info("user registered", slog.Int64("user_id", user.ID))

	return user, nil
}

// Login authenticates by username or email. The same error is returned for
// unknown accounts and wrong passwords.
func (s *AccountService) Login(ctx context.Context, identity, password string) (*domain.User, error) {
	identity = strings.TrimSpace(identity)

	user, err := s.users.GetUserByUsername(ctx, identity)
	if domain.IsCode(err, domain.ENOTFOUND) {
		user, err = s.users.GetUserByEmail(ctx, strings.ToLower(identity))
	}
	if domain.IsCode(err, domain.ENOTFOUND) {
		return nil, domain.ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.IsActive || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, domain.ErrBadCredentials
	}
	return user, nil
}

func (s *AccountService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetUser(ctx, id)
}

func (s *AccountService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListUsers(ctx)
}

// SetUserFlags updates an account's active and admin flags. Nil pointers
// leave the current value in place.
func (s *AccountService) SetUserFlags(ctx context.Context, id int64, isActive, isAdmin *bool) (*domain.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if isActive != nil {
		user.IsActive = *isActive
	}
	if isAdmin != nil {
		user.IsAdmin = *isAdmin
	}
	if err := s.users.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account. Accounts with order history are preserved
// for bookkeeping and cannot be deleted.
func (s *AccountService) DeleteUser(ctx context.Context, id int64) error {
	n, err := s.users.CountOrdersForUser(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrUserHasOrders
	}
	return s.users.DeleteUser(ctx, id)
}

// Addresses

func (s *AccountService) ListAddresses(ctx context.Context, userID int64) ([]domain.Address, error) {
	return s.addresses.ListAddressesForUser(ctx, userID)
}

func (s *AccountService) AddAddress(ctx context.Context, a domain.Address) (*domain.Address, error) {
	const op = "account.add_address"
	if strings.TrimSpace(a.Name) == "" || strings.TrimSpace(a.FullAddress) == "" {
		return nil, domain.Invalid(op, "Address name and full address are required")
	}

	existing, err := s.addresses.ListAddressesForUser(ctx, a.UserID)
	if err != nil {
		return nil, err
	}
	// First address becomes the default automatically.
	if len(existing) == 0 {
		a.IsDefault = true
	}
	return s.addresses.CreateAddress(ctx, a)
}

func (s *AccountService) DeleteAddress(ctx context.Context, userID, addressID int64) error {
	a, err := s.addresses.GetAddress(ctx, addressID)
	if err != nil {
		return err
	}
	if a.UserID != userID {
		return domain.ErrAddressNotFound
	}
	return s.addresses.DeleteAddress(ctx, addressID)
}

func (s *AccountService) SetDefaultAddress(ctx context.Context, userID, addressID int64) error {
	return s.addresses.SetDefaultAddress(ctx, userID, addressID)
}

// Cards

func (s *AccountService) ListCards(ctx context.Context, userID int64) ([]domain.CreditCard, error) {
	return s.cards.ListCardsForUser(ctx, userID)
}

func (s *AccountService) AddCard(ctx context.Context, c domain.CreditCard) (*domain.CreditCard, error) {
	const op = "account.add_card"

	digits := strings.ReplaceAll(c.CardNumber, " ", "")
	if len(digits) < 12 || len(digits) > 19 {
		return nil, domain.Invalid(op, "Card number must be 12 to 19 digits")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return nil, domain.Invalid(op, "Card number must contain only digits")
		}
	}
	if c.ExpiryMonth < 1 || c.ExpiryMonth > 12 {
		return nil, domain.Invalid(op, "Expiry month must be 1-12")
	}
	c.CardNumber = digits

	existing, err := s.cards.ListCardsForUser(ctx, c.UserID)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		c.IsDefault = true
	}
	return s.cards.CreateCard(ctx, c)
}

func (s *AccountService) DeleteCard(ctx context.Context, userID, cardID int64) error {
	c, err := s.cards.GetCard(ctx, cardID)
	if err != nil {
		return err
	}
	if c.UserID != userID {
		return domain.ErrCardNotFound
	}
	return s.cards.DeleteCard(ctx, cardID)
}

func (s *AccountService) SetDefaultCard(ctx context.Context, userID, cardID int64) error {
	return s.cards.SetDefaultCard(ctx, userID, cardID)
}

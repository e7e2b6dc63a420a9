package service

import (
	"context"
	"testing"

	"github.com/ketenci/carsi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserStore backs AccountService tests.
type fakeUserStore struct {
	users      map[int64]*domain.User
	orderCount map[int64]int64
	nextID     int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*domain.User), orderCount: make(map[int64]int64), nextID: 1}
}

func (s *fakeUserStore) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *fakeUserStore) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return nil, domain.ErrEmailTaken
		}
		if existing.Username == u.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	u.ID = s.nextID
	s.nextID++
	s.users[u.ID] = &u
	return &u, nil
}

func (s *fakeUserStore) UpdateUser(ctx context.Context, u domain.User) error {
	if _, ok := s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	s.users[u.ID] = &u
	return nil
}

func (s *fakeUserStore) DeleteUser(ctx context.Context, id int64) error {
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *fakeUserStore) CountOrdersForUser(ctx context.Context, userID int64) (int64, error) {
	return s.orderCount[userID], nil
}

func newAccountFixture() (*AccountService, *fakeUserStore, *fakeNotifier) {
	users := newFakeUserStore()
	notifier := &fakeNotifier{}
	svc := NewAccountService(users, newFakeAddressStore(), newFakeCardStore(), notifier, testLogger())
	return svc, users, notifier
}

func TestAccountService_SignupAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, notifier := newAccountFixture()

	user, err := svc.Signup(ctx, "alice", "Alice@Example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email, "email is lowercased")
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)
	assert.NotEmpty(t, notifier.messages, "signup lands in the admin feed")

	// Login works by username and by email, case-insensitive for email.
	got, err := svc.Login(ctx, "alice", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	got, err = svc.Login(ctx, "ALICE@example.COM", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAccountService_Signup_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAccountFixture()

	_, err := svc.Signup(ctx, "", "a@b.com", "longenough")
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	_, err = svc.Signup(ctx, "bob", "b@b.com", "short")
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	_, err = svc.Signup(ctx, "alice", "a@b.com", "longenough")
	require.NoError(t, err)
	_, err = svc.Signup(ctx, "alice2", "a@b.com", "longenough")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	_, err = svc.Signup(ctx, "alice", "other@b.com", "longenough")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestAccountService_Login_BadCredentials(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newAccountFixture()

	_, err := svc.Signup(ctx, "alice", "a@b.com", "hunter2hunter2")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)

	_, err = svc.Login(ctx, "nobody", "hunter2hunter2")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)

	// Deactivated accounts cannot sign in.
	for _, u := range users.users {
		u.IsActive = false
	}
	_, err = svc.Login(ctx, "alice", "hunter2hunter2")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)
}

func TestAccountService_SetUserFlags(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAccountFixture()

	user, err := svc.Signup(ctx, "alice", "a@b.com", "hunter2hunter2")
	require.NoError(t, err)

	off := false
	got, err := svc.SetUserFlags(ctx, user.ID, &off, nil)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.False(t, got.IsAdmin, "nil pointer leaves the flag alone")

	_, err = svc.Login(ctx, "alice", "hunter2hunter2")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)

	_, err = svc.SetUserFlags(ctx, 99, &off, nil)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAccountService_DeleteUser_KeepsBuyers(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newAccountFixture()

	buyer, err := svc.Signup(ctx, "buyer", "b@b.com", "hunter2hunter2")
	require.NoError(t, err)
	users.orderCount[buyer.ID] = 3

	err = svc.DeleteUser(ctx, buyer.ID)
	assert.ErrorIs(t, err, domain.ErrUserHasOrders)

	ghost, err := svc.Signup(ctx, "ghost", "g@b.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.NoError(t, svc.DeleteUser(ctx, ghost.ID))
}

func TestAccountService_FirstAddressBecomesDefault(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAccountFixture()

	first, err := svc.AddAddress(ctx, domain.Address{UserID: 1, Name: "Home", FullAddress: "1 Main St"})
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	second, err := svc.AddAddress(ctx, domain.Address{UserID: 1, Name: "Work", FullAddress: "2 Office Rd"})
	require.NoError(t, err)
	assert.False(t, second.IsDefault)

	// Promoting the second demotes the first.
	require.NoError(t, svc.SetDefaultAddress(ctx, 1, second.ID))
	addrs, err := svc.ListAddresses(ctx, 1)
	require.NoError(t, err)
	var defaults int
	for _, a := range addrs {
		if a.IsDefault {
			defaults++
			assert.Equal(t, second.ID, a.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestAccountService_AddCard_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAccountFixture()

	_, err := svc.AddCard(ctx, domain.CreditCard{UserID: 1, CardNumber: "1234", ExpiryMonth: 1, ExpiryYear: 2030})
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	_, err = svc.AddCard(ctx, domain.CreditCard{UserID: 1, CardNumber: "4111 1111 1111 111x", ExpiryMonth: 1, ExpiryYear: 2030})
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	_, err = svc.AddCard(ctx, domain.CreditCard{UserID: 1, CardNumber: "4111111111111111", ExpiryMonth: 13, ExpiryYear: 2030})
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	card, err := svc.AddCard(ctx, domain.CreditCard{UserID: 1, CardNumber: "4111 1111 1111 1111", ExpiryMonth: 12, ExpiryYear: 2030})
	require.NoError(t, err)
	assert.True(t, card.IsDefault)
	assert.Equal(t, "**** **** **** 1111", card.MaskedNumber())
}

func TestAccountService_DeleteForeignAddressAndCard(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAccountFixture()

	addr, err := svc.AddAddress(ctx, domain.Address{UserID: 1, Name: "Home", FullAddress: "1 Main St"})
	require.NoError(t, err)
	card, err := svc.AddCard(ctx, domain.CreditCard{UserID: 1, CardNumber: "4111111111111111", ExpiryMonth: 1, ExpiryYear: 2030})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteAddress(ctx, 2, addr.ID), domain.ErrAddressNotFound)
	assert.ErrorIs(t, svc.DeleteCard(ctx, 2, card.ID), domain.ErrCardNotFound)
}

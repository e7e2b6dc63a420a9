package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ketenci/carsi/internal/domain"
)

// UserStore implements domain.UserStore.
type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

const userColumns = `id, username, email, password_hash, is_admin, is_active, avatar_url, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.IsAdmin, &u.IsActive, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) getUser(ctx context.Context, where string, arg any) (*domain.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where, arg)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, "postgres.get_user", "failed to load user")
	}
	return u, nil
}

func (s *UserStore) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.getUser(ctx, "id = $1", id)
}

func (s *UserStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getUser(ctx, "username = $1", username)
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getUser(ctx, "email = $1", email)
}

func (s *UserStore) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, is_admin, is_active, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		u.Username, u.Email, u.PasswordHash, u.IsAdmin, u.IsActive, u.AvatarURL).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "users_email_key" {
				return nil, domain.ErrEmailTaken
			}
			return nil, domain.ErrUsernameTaken
		}
		return nil, domain.Internal(err, "postgres.create_user", "failed to create user")
	}
	return &u, nil
}

func (s *UserStore) UpdateUser(ctx context.Context, u domain.User) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users SET username = $2, email = $3, password_hash = $4,
			is_admin = $5, is_active = $6, avatar_url = $7, updated_at = now()
		WHERE id = $1`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.IsAdmin, u.IsActive, u.AvatarURL)
	if err != nil {
		return domain.Internal(err, "postgres.update_user", "failed to update user")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *UserStore) DeleteUser(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "postgres.delete_user", "failed to delete user")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *UserStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, domain.Internal(err, "postgres.list_users", "failed to list users")
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, domain.Internal(err, "postgres.list_users", "failed to scan user")
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (s *UserStore) CountOrdersForUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM orders WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, domain.Internal(err, "postgres.count_orders", "failed to count orders")
	}
	return n, nil
}

// AddressStore implements domain.AddressStore.
type AddressStore struct {
	pool *pgxpool.Pool
}

func NewAddressStore(pool *pgxpool.Pool) *AddressStore {
	return &AddressStore{pool: pool}
}

const addressColumns = `id, user_id, name, full_address, city, postal_code, phone, is_default, created_at, updated_at`

func scanAddress(row pgx.Row) (*domain.Address, error) {
	var a domain.Address
	err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.FullAddress, &a.City,
		&a.PostalCode, &a.Phone, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AddressStore) GetAddress(ctx context.Context, id int64) (*domain.Address, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id)
	a, err := scanAddress(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAddressNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, "postgres.get_address", "failed to load address")
	}
	return a, nil
}

func (s *AddressStore) ListAddressesForUser(ctx context.Context, userID int64) ([]domain.Address, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, created_at DESC`, userID)
	if err != nil {
		return nil, domain.Internal(err, "postgres.list_addresses", "failed to list addresses")
	}
	defer rows.Close()

	var out []domain.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, domain.Internal(err, "postgres.list_addresses", "failed to scan address")
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (s *AddressStore) CreateAddress(ctx context.Context, a domain.Address) (*domain.Address, error) {
	const op = "postgres.create_address"
	err := withTx(ctx, s.pool, func(tx pgx.Tx) error {
		if a.IsDefault {
			if _, err := tx.Exec(ctx,
				`UPDATE addresses SET is_default = FALSE, updated_at = now() WHERE user_id = $1 AND is_default`, a.UserID); err != nil {
				return domain.Internal(err, op, "failed to clear default address")
			}
		}
		return tx.QueryRow(ctx, `
			INSERT INTO addresses (user_id, name, full_address, city, postal_code, phone, is_default)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at`,
			a.UserID, a.Name, a.FullAddress, a.City, a.PostalCode, a.Phone, a.IsDefault).
			Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	})
	if err != nil {
		if domain.ErrorCode(err) != domain.EINTERNAL {
			return nil, err
		}
		return nil, domain.Internal(err, op, "failed to create address")
	}
	return &a, nil
}

func (s *AddressStore) DeleteAddress(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "postgres.delete_address", "failed to delete address")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAddressNotFound
	}
	return nil
}

func (s *AddressStore) SetDefaultAddress(ctx context.Context, userID, addressID int64) error {
	const op = "postgres.set_default_address"
	return withTx(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`UPDATE addresses SET is_default = FALSE, updated_at = now() WHERE user_id = $1 AND is_default`, userID); err != nil {
			return domain.Internal(err, op, "failed to clear default address")
		}
		tag, err := tx.Exec(ctx,
			`UPDATE addresses SET is_default = TRUE, updated_at = now() WHERE id = $1 AND user_id = $2`, addressID, userID)
		if err != nil {
			return domain.Internal(err, op, "failed to set default address")
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrAddressNotFound
		}
		return nil
	})
}

// CardStore implements domain.CardStore.
type CardStore struct {
	pool *pgxpool.Pool
}

func NewCardStore(pool *pgxpool.Pool) *CardStore {
	return &CardStore{pool: pool}
}

const cardColumns = `id, user_id, name, card_number, card_holder, expiry_month, expiry_year, is_default, created_at, updated_at`

func scanCard(row pgx.Row) (*domain.CreditCard, error) {
	var c domain.CreditCard
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.CardNumber, &c.CardHolder,
		&c.ExpiryMonth, &c.ExpiryYear, &c.IsDefault, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CardStore) GetCard(ctx context.Context, id int64) (*domain.CreditCard, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+cardColumns+` FROM credit_cards WHERE id = $1`, id)
	c, err := scanCard(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCardNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, "postgres.get_card", "failed to load card")
	}
	return c, nil
}

func (s *CardStore) ListCardsForUser(ctx context.Context, userID int64) ([]domain.CreditCard, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+cardColumns+` FROM credit_cards WHERE user_id = $1 ORDER BY is_default DESC, created_at DESC`, userID)
	if err != nil {
		return nil, domain.Internal(err, "postgres.list_cards", "failed to list cards")
	}
	defer rows.Close()

	var out []domain.CreditCard
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, domain.Internal(err, "postgres.list_cards", "failed to scan card")
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (s *CardStore) CreateCard(ctx context.Context, c domain.CreditCard) (*domain.CreditCard, error) {
	const op = "postgres.create_card"
	err := withTx(ctx, s.pool, func(tx pgx.Tx) error {
		if c.IsDefault {
			if _, err := tx.Exec(ctx,
				`UPDATE credit_cards SET is_default = FALSE, updated_at = now() WHERE user_id = $1 AND is_default`, c.UserID); err != nil {
				return domain.Internal(err, op, "failed to clear default card")
			}
		}
		return tx.QueryRow(ctx, `
			INSERT INTO credit_cards (user_id, name, card_number, card_holder, expiry_month, expiry_year, is_default)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at`,
			c.UserID, c.Name, c.CardNumber, c.CardHolder, c.ExpiryMonth, c.ExpiryYear, c.IsDefault).
			Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	})
	if err != nil {
		if domain.ErrorCode(err) != domain.EINTERNAL {
			return nil, err
		}
		return nil, domain.Internal(err, op, "failed to create card")
	}
	return &c, nil
}

func (s *CardStore) DeleteCard(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM credit_cards WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "postgres.delete_card", "failed to delete card")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}

func (s *CardStore) SetDefaultCard(ctx context.Context, userID, cardID int64) error {
	const op = "postgres.set_default_card"
	return withTx(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`UPDATE credit_cards SET is_default = FALSE, updated_at = now() WHERE user_id = $1 AND is_default`, userID); err != nil {
			return domain.Internal(err, op, "failed to clear default card")
		}
		tag, err := tx.Exec(ctx,
			`UPDATE credit_cards SET is_default = TRUE, updated_at = now() WHERE id = $1 AND user_id = $2`, cardID, userID)
		if err != nil {
			return domain.Internal(err, op, "failed to set default card")
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrCardNotFound
		}
		return nil
	})
}

package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shivam041/riseapp/internal"
	"golang.org/x/crypto/bcrypt"
)

// PostgresUserStore backs the remote auth/profile API in production.
//
// Expected schema:
//
//	CREATE TABLE users (
//	    id TEXT PRIMARY KEY,
//	    email TEXT UNIQUE NOT NULL,
//	    name TEXT NOT NULL DEFAULT '',
//	    password_hash TEXT NOT NULL,
//	    token TEXT NOT NULL DEFAULT '',
//	    start_date TIMESTAMPTZ NOT NULL,
//	    current_day INT NOT NULL DEFAULT 1,
//	    is_onboarding_complete BOOLEAN NOT NULL DEFAULT FALSE,
//	    is_admin BOOLEAN NOT NULL DEFAULT FALSE,
//	    is_active BOOLEAN NOT NULL DEFAULT TRUE
//	);
type PostgresUserStore struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresUserStore(dsn string, logger internal.Logger) (*PostgresUserStore, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresUserStore{pool: pool, logger: logger}, nil
}

const userColumns = `id, email, name, start_date, current_day, is_onboarding_complete, is_admin, is_active`

func scanUser(row pgx.Row) (*internal.User, error) {
	var u internal.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.StartDate, &u.CurrentDay,
		&u.IsOnboardingComplete, &u.IsAdmin, &u.IsActive)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (p *PostgresUserStore) CreateUser(ctx context.Context, email, password, name string) (*internal.User, error) {
	email = strings.ToLower(email)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &internal.User{
		ID:         uuid.NewString(),
		Email:      email,
		Name:       name,
		StartDate:  time.Now(),
		CurrentDay: 1,
		IsActive:   true,
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO users (id, email, name, password_hash, start_date, current_day, is_active) VALUES ($1, $2, $3, $4, $5, $6, TRUE)`,
		user.ID, user.Email, user.Name, string(hash), user.StartDate, user.CurrentDay)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, internal.DuplicateEmailError(email)
		}
		p.logger.Errorf("failed to insert user: %v", err)
		return nil, err
	}
	return user, nil
}

func (p *PostgresUserStore) Authenticate(ctx context.Context, email, password string) (*internal.User, error) {
	email = strings.ToLower(email)
	var hash string
	row := p.pool.QueryRow(ctx, `SELECT password_hash FROM users WHERE email = $1`, email)
	if err := row.Scan(&hash); err != nil {
		return nil, internal.InvalidCredentialsError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, internal.InvalidCredentialsError()
	}
	return scanUser(p.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (p *PostgresUserStore) GetUserByID(ctx context.Context, id string) (*internal.User, error) {
	u, err := scanUser(p.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, internal.NotFoundError("user not found")
	}
	return u, nil
}

func (p *PostgresUserStore) GetUserByToken(ctx context.Context, token string) (*internal.User, error) {
	if token == "" {
		return nil, internal.InvalidCredentialsError()
	}
	u, err := scanUser(p.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE token = $1`, token))
	if err != nil {
		return nil, internal.InvalidCredentialsError()
	}
	return u, nil
}

func (p *PostgresUserStore) SetToken(ctx context.Context, id, token string) error {
	tag, err := p.pool.Exec(ctx, `UPDATE users SET token = $2 WHERE id = $1`, id, token)
	if err != nil {
		p.logger.Errorf("failed to set token: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return internal.NotFoundError("user not found")
	}
	return nil
}

func (p *PostgresUserStore) UpdateUser(ctx context.Context, user *internal.User) error {
	// GREATEST keeps current_day monotone under concurrent updates.
	tag, err := p.pool.Exec(ctx,
		`UPDATE users SET name = $2, current_day = GREATEST(current_day, $3), is_onboarding_complete = $4 WHERE id = $1`,
		user.ID, user.Name, user.CurrentDay, user.IsOnboardingComplete)
	if err != nil {
		p.logger.Errorf("failed to update user: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return internal.NotFoundError("user not found")
	}
	return nil
}

func (p *PostgresUserStore) ListUsers(ctx context.Context) ([]internal.User, error) {
	rows, err := p.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY email`)
	if err != nil {
		p.logger.Errorf("failed to query users: %v", err)
		return nil, err
	}
	defer rows.Close()

	var users []internal.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			p.logger.Errorf("failed to scan user: %v", err)
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}

func (p *PostgresUserStore) ToggleActive(ctx context.Context, id string) (*internal.User, error) {
	u, err := scanUser(p.pool.QueryRow(ctx,
		`UPDATE users SET is_active = NOT is_active WHERE id = $1 RETURNING `+userColumns, id))
	if err != nil {
		return nil, internal.NotFoundError("user not found")
	}
	return u, nil
}

func (p *PostgresUserStore) DeleteUser(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		p.logger.Errorf("failed to delete user: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return internal.NotFoundError("user not found")
	}
	return nil
}

var _ UserStore = (*PostgresUserStore)(nil)

package usecase

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	domainUser "github.com/AzielCF/az-cast/domains/user"
	pkgError "github.com/AzielCF/az-cast/pkg/error"
	"github.com/AzielCF/az-cast/validations"
)

type serviceUser struct {
	db *sql.DB
}

func NewUserService(db *sql.DB) (domainUser.IUserUsecase, error) {
	createTable := `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			login TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := db.Exec(createTable); err != nil {
		return nil, fmt.Errorf("failed to init users table: %w", err)
	}
	return &serviceUser{db: db}, nil
}

func (service *serviceUser) Register(ctx context.Context, request domainUser.RegisterRequest) (domainUser.User, error) {
	if err := validations.ValidateRegisterUser(ctx, request); err != nil {
		return domainUser.User{}, err
	}

	var exists int
	if err := service.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE login = ?`, request.Login).Scan(&exists); err != nil {
		return domainUser.User{}, fmt.Errorf("failed to check login: %w", err)
	}
	if exists > 0 {
		return domainUser.User{}, pkgError.ValidationError("login: already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return domainUser.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created := domainUser.User{ID: uuid.NewString(), Login: request.Login}
	if _, err := service.db.ExecContext(ctx,
		`INSERT INTO users (id, login, password_hash) VALUES (?, ?, ?)`,
		created.ID, created.Login, string(hash)); err != nil {
		return domainUser.User{}, fmt.Errorf("failed to store user: %w", err)
	}

	logrus.Infof("[USER] Registered %s", created.Login)
	return created, nil
}

func (service *serviceUser) Login(ctx context.Context, request domainUser.LoginRequest) (domainUser.LoginResponse, error) {
	if err := validations.ValidateLoginUser(ctx, request); err != nil {
		return domainUser.LoginResponse{}, err
	}

	var (
		found domainUser.User
		hash  string
	)
	err := service.db.QueryRowContext(ctx,
		`SELECT id, login, password_hash FROM users WHERE login = ?`, request.Login).
		Scan(&found.ID, &found.Login, &hash)
	if err == sql.ErrNoRows {
		return domainUser.LoginResponse{}, pkgError.AuthError("login or password is incorrect")
	}
	if err != nil {
		return domainUser.LoginResponse{}, fmt.Errorf("failed to read user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(request.Password)) != nil {
		return domainUser.LoginResponse{}, pkgError.AuthError("login or password is incorrect")
	}

	logrus.Infof("[USER] Login %s", found.Login)
	return domainUser.LoginResponse{
		Token: "auth_" + uuid.NewString(),
		User:  found,
	}, nil
}

func (service *serviceUser) List(ctx context.Context) ([]domainUser.User, error) {
	rows, err := service.db.QueryContext(ctx, `SELECT id, login FROM users ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]domainUser.User, 0)
	for rows.Next() {
		var u domainUser.User
		if err := rows.Scan(&u.ID, &u.Login); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

package usecase

import (
	"context"
	"errors"

	"jobdesk/internal/domain/user"
	"jobdesk/internal/pkg/jwt"
	ucauth "jobdesk/internal/usecase/auth"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (user.User, string, string, error)
	Login(ctx context.Context, in ucauth.LoginInput) (user.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	authSvc *ucauth.Service
	users   user.Repository
	jwt     jwt.Service
}

func NewAuthUsecase(users user.Repository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: ucauth.NewService(users), users: users, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (user.User, string, string, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return user.User{}, "", "", err
	}
	return u.issueTokens(usr)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (user.User, string, string, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return user.User{}, "", "", err
	}
	return u.issueTokens(usr)
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}

	if !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", ErrInternal
	}

	_, access, refresh, err := u.issueTokens(usr)
	return access, refresh, err
}

func (u *Auth) issueTokens(usr user.User) (user.User, string, string, error) {
	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Name, string(usr.Role))
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}
	return usr, access, refresh, nil
}

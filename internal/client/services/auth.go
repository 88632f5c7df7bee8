package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/prescreen/internal/client/client"
	"github.com/dmitrijs2005/prescreen/internal/client/models"
)

// AuthService covers the anonymous endpoints.
type AuthService interface {
	Login(ctx context.Context, id, password string) (*models.LoginResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error)
	ForgotID(ctx context.Context, email string) (*models.ForgotIDResponse, error)
}

type authService struct {
	client client.Client
}

func NewAuthService(c client.Client) AuthService {
	return &authService{client: c}
}

func (s *authService) Login(ctx context.Context, id, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	err := s.client.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   models.LoginRequest{ID: id, Password: password},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	var resp models.RegisterResponse
	if err := s.client.Do(ctx, client.Request{Method: http.MethodPost, Path: "/auth/register", Body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *authService) ForgotID(ctx context.Context, email string) (*models.ForgotIDResponse, error) {
	var resp models.ForgotIDResponse
	err := s.client.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   "/auth/forgot-id",
		Body:   models.ForgotIDRequest{Email: email},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

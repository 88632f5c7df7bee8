package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/prescreen/internal/client/client"
	"github.com/dmitrijs2005/prescreen/internal/client/models"
)

// ApplicationService lists, creates, reads and deletes loan applications.
// The backend scopes List to the caller: applicants see their own,
// staff see all.
type ApplicationService interface {
	List(ctx context.Context) ([]models.Application, error)
	Create(ctx context.Context, req models.NewApplication) (*models.Application, error)
	Get(ctx context.Context, id int64) (*models.Application, error)
	Delete(ctx context.Context, id int64) error
	PreScreen(ctx context.Context, id int64) (*models.PreScreenReport, error)
}

type applicationService struct {
	client client.Client
}

func NewApplicationService(c client.Client) ApplicationService {
	return &applicationService{client: c}
}

func applicationPath(id int64) string {
	return fmt.Sprintf("/applications/%d", id)
}

func (s *applicationService) List(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if err := s.client.Do(ctx, client.Request{Method: http.MethodGet, Path: "/applications"}, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *applicationService) Create(ctx context.Context, req models.NewApplication) (*models.Application, error) {
	var app models.Application
	if err := s.client.Do(ctx, client.Request{Method: http.MethodPost, Path: "/applications", Body: req}, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *applicationService) Get(ctx context.Context, id int64) (*models.Application, error) {
	var app models.Application
	if err := s.client.Do(ctx, client.Request{Method: http.MethodGet, Path: applicationPath(id)}, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *applicationService) Delete(ctx context.Context, id int64) error {
	return s.client.Do(ctx, client.Request{Method: http.MethodDelete, Path: applicationPath(id)}, nil)
}

func (s *applicationService) PreScreen(ctx context.Context, id int64) (*models.PreScreenReport, error) {
	var report models.PreScreenReport
	err := s.client.Do(ctx, client.Request{Method: http.MethodGet, Path: applicationPath(id) + "/pre-screen"}, &report)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

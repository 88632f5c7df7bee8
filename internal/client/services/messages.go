package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/prescreen/internal/client/client"
	"github.com/dmitrijs2005/prescreen/internal/client/models"
)

// MessageService reads and appends to an application's comment thread.
// List returns newest first.
type MessageService interface {
	List(ctx context.Context, appID int64) ([]models.Comment, error)
	Post(ctx context.Context, appID int64, message string) (*models.Comment, error)
}

type messageService struct {
	client client.Client
}

func NewMessageService(c client.Client) MessageService {
	return &messageService{client: c}
}

func commentsPath(appID int64) string {
	return fmt.Sprintf("/applications/%d/comments", appID)
}

func (s *messageService) List(ctx context.Context, appID int64) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.client.Do(ctx, client.Request{Method: http.MethodGet, Path: commentsPath(appID)}, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *messageService) Post(ctx context.Context, appID int64, message string) (*models.Comment, error) {
	var c models.Comment
	err := s.client.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   commentsPath(appID),
		Body:   models.NewComment{Message: message},
	}, &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

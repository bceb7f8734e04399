package board

import (
	"context"
	"fmt"
)

type Service interface {
	ListBoards(ctx context.Context) ([]*Summary, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListBoards(ctx context.Context) ([]*Summary, error) {
	boards, err := s.repo.ListBoards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	if boards == nil {
		boards = []*Summary{}
	}
	return boards, nil
}

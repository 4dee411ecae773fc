package service

import (
	"context"

	"licitaciones-ai-be/internal/dto"
	"licitaciones-ai-be/internal/entity"
	"licitaciones-ai-be/internal/repository/unitofwork"
)

type IRulesService interface {
	Get(ctx context.Context) (*dto.RulesResponse, error)
	Update(ctx context.Context, req *dto.UpdateRulesRequest) (*dto.RulesResponse, error)

	// Current returns the rules text the analysis prompt should carry,
	// falling back to the built-in default when nothing is stored.
	Current(ctx context.Context) (string, error)
}

type rulesService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewRulesService(uowFactory unitofwork.RepositoryFactory) IRulesService {
	return &rulesService{
		uowFactory: uowFactory,
	}
}

func (s *rulesService) Get(ctx context.Context) (*dto.RulesResponse, error) {
	content, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.RulesResponse{Content: content}, nil
}

func (s *rulesService) Update(ctx context.Context, req *dto.UpdateRulesRequest) (*dto.RulesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.BusinessRulesRepository().Set(ctx, req.Content); err != nil {
		return nil, err
	}
	return &dto.RulesResponse{Content: req.Content}, nil
}

func (s *rulesService) Current(ctx context.Context) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	content, err := uow.BusinessRulesRepository().Get(ctx)
	if err != nil {
		return "", err
	}
	if content == "" {
		return entity.DefaultBusinessRules, nil
	}
	return content, nil
}

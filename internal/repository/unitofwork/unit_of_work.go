package unitofwork

import (
	"context"

	"licitaciones-ai-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	TenderRepository() contract.TenderRepository
	BusinessRulesRepository() contract.BusinessRulesRepository
}

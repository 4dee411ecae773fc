package contract

import (
	"context"

	"github.com/google/uuid"

	"licitaciones-ai-be/internal/entity"
	"licitaciones-ai-be/internal/repository/specification"
)

type TenderRepository interface {
	Create(ctx context.Context, tender *entity.Tender) error
	// Save is a full-row replace by id. Concurrent editors overwrite each
	// other (last write wins); there is no optimistic-concurrency check.
	Save(ctx context.Context, tender *entity.Tender) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tender, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tender, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

package ports

import (
	"context"

	"github.com/morgansundqvist/musecase/internal/domain"
)

type UseCaseDispatcher interface {
	UseCases() []domain.UseCase
	Lookup(name string) (domain.UseCase, error)
	Dispatch(ctx context.Context, name string, inputs map[string]string) (domain.RenderedResult, error)
}

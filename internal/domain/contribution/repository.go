package contribution

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, c *Contribution) error
	ListByGroup(ctx context.Context, groupID string) ([]Contribution, error)
	ListByUser(ctx context.Context, userID string) ([]Contribution, error)
	SumByGroup(ctx context.Context, groupID string) (decimal.Decimal, error)
}

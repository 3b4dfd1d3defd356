package access

import (
	"context"
	"time"
)

type StoreAPI interface {
	ByEmployee(ctx context.Context, matricula int64) ([]Row, error)
	ByBus(ctx context.Context, busNumber int) ([]Row, error)
	ByDate(ctx context.Context, day time.Time) ([]Row, error)
	All(ctx context.Context) ([]Row, error)
}

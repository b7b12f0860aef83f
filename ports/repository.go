package ports

import (
	"context"
	"time"

	"schedparse/domain/core"
	"schedparse/domain/schedule"
)

// ParseRun is a persisted record of one parse invocation.
type ParseRun struct {
	ID           core.ParseRunID
	Filename     string
	ScheduleName string
	ProductCount int
	Result       schedule.ParseResult
	CreatedAt    time.Time
}

// ScheduleRepository persists parse runs and their extracted products.
type ScheduleRepository interface {
	Create(ctx context.Context, run *ParseRun) error
	GetByID(ctx context.Context, id core.ParseRunID) (*ParseRun, error)
	List(ctx context.Context, limit, offset int) ([]*ParseRun, error)
	Delete(ctx context.Context, id core.ParseRunID) error
}

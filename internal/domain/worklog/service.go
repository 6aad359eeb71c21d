package worklog

import "context"

type WorkLogService interface {
	Create(ctx context.Context, req CreateWorkLogRequest) (WorkLogResponse, error)
	Update(ctx context.Context, req UpdateWorkLogRequest) (WorkLogResponse, error)
	ListMy(ctx context.Context, filter WorkLogFilter) ([]WorkLogResponse, error)
}

package message

import "context"

type MessageService interface {
	// RecordResponse stamps the caller's response to one of their messages
	RecordResponse(ctx context.Context, req RecordResponseRequest) (ResponseResponse, error)

	// ListMyResponses lists the caller's recorded responses
	ListMyResponses(ctx context.Context, filter ResponseFilter) ([]ResponseResponse, error)
}

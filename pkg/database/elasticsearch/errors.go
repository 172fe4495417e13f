package elasticsearch

import "errors"

var (
	ErrClientCreateFailed = errors.New("failed to create elasticsearch client")
	ErrPingFailed         = errors.New("failed to ping elasticsearch")
	ErrMarshalFailed      = errors.New("failed to marshal document")
	ErrBulkRequestFailed  = errors.New("bulk request failed")
	ErrBulkItemsFailed    = errors.New("bulk request rejected documents")
	ErrDecodeFailed       = errors.New("failed to decode response")
)

package kafka

import "errors"

var (
	ErrProducerCreateFailed = errors.New("failed to create kafka producer")
	ErrMarshalFailed        = errors.New("failed to marshal item")
	ErrPublishFailed        = errors.New("failed to publish batch")
)

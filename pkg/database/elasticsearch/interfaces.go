package elasticsearch

import (
	"net/http"
)

// ElasticClient is the transport the sinks send requests through.
// *elasticsearch.Client satisfies it.
type ElasticClient interface {
	Perform(*http.Request) (*http.Response, error)
}

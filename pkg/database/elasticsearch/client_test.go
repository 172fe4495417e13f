package elasticsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/huynhanx03/batchcollector/pkg/datastructs/buffer"
	"github.com/huynhanx03/batchcollector/pkg/settings"
)

// Docker configuration
const (
	elasticsearchImage = "elastic/elasticsearch:8.18.8"
	elasticsearchPort  = "9200/tcp"
	startupTimeout     = 60 * time.Second
)

func TestBulkSink_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	if !isDockerRunning(ctx) {
		t.Skip("Docker is not running, skipping integration test")
	}

	endpoint, terminate := setupElasticsearchContainer(ctx, t)
	defer terminate()

	client, err := New(ctx, settings.Elasticsearch{
		Addresses: []string{fmt.Sprintf("http://%s", endpoint)},
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	sink := NewBulkSink(client, "test-index",
		WithDocumentID(func(d testDocument) string { return d.ID }),
		WithRefresh[testDocument]("true"),
	)

	batch := buffer.NewLinkedList(
		testDocument{ID: "1", Title: "first"},
		testDocument{ID: "2", Title: "second"},
		testDocument{ID: "3", Title: "third"},
	)
	if err := sink.Consume(ctx, batch); err != nil {
		t.Fatalf("Consume() error = %v", err)
	}

	res, err := esapi.CountRequest{Index: []string{"test-index"}}.Do(ctx, client)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	defer res.Body.Close()

	var count struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&count); err != nil {
		t.Fatalf("decode count: %v", err)
	}
	if count.Count != 3 {
		t.Errorf("Expected 3 documents, got %d", count.Count)
	}
}

func setupElasticsearchContainer(ctx context.Context, t *testing.T) (string, func()) {
	req := testcontainers.ContainerRequest{
		Image: elasticsearchImage,
		Env: map[string]string{
			"discovery.type":         "single-node",
			"xpack.security.enabled": "false",
		},
		ExposedPorts: []string{elasticsearchPort},
		WaitingFor:   wait.ForHTTP("/_cluster/health").WithPort(elasticsearchPort).WithStartupTimeout(startupTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start elasticsearch container: %v", err)
	}

	endpoint, err := container.PortEndpoint(ctx, elasticsearchPort, "")
	if err != nil {
		container.Terminate(ctx)
		t.Fatalf("failed to get container endpoint: %v", err)
	}

	t.Logf("Elasticsearch running at %s", endpoint)

	terminate := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	}

	return endpoint, terminate
}

func isDockerRunning(ctx context.Context) bool {
	cmd := exec.CommandContext(ctx, "docker", "info")
	if err := cmd.Run(); err != nil {
		return false
	}
	return true
}

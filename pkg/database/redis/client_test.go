package redis

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"os/exec"
	"strconv"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/huynhanx03/batchcollector/pkg/datastructs/buffer"
	"github.com/huynhanx03/batchcollector/pkg/settings"
)

const (
	redisImage = "redis:7-alpine"
	redisPort  = "6379/tcp"
)

type testItem struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

func TestNewOptions(t *testing.T) {
	tests := []struct {
		name     string
		cfg      settings.Redis
		wantAddr string
		wantPool int
		wantDial time.Duration
	}{
		{
			name:     "defaults",
			cfg:      settings.Redis{Host: "cache"},
			wantAddr: "cache",
			wantPool: defaultPoolSize,
			wantDial: defaultDialTimeout * time.Second,
		},
		{
			name:     "explicit",
			cfg:      settings.Redis{Host: "cache", Port: 6380, PoolSize: 3, DialTimeout: 1},
			wantAddr: "cache:6380",
			wantPool: 3,
			wantDial: time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := newOptions(withDefaults(tt.cfg))

			if opts.Addr != tt.wantAddr {
				t.Errorf("Addr = %q, want %q", opts.Addr, tt.wantAddr)
			}
			if opts.PoolSize != tt.wantPool {
				t.Errorf("PoolSize = %d, want %d", opts.PoolSize, tt.wantPool)
			}
			if opts.DialTimeout != tt.wantDial {
				t.Errorf("DialTimeout = %v, want %v", opts.DialTimeout, tt.wantDial)
			}
			if opts.MinRetryBackoff != defaultMinRetryBackoff*time.Millisecond {
				t.Errorf("MinRetryBackoff = %v", opts.MinRetryBackoff)
			}
		})
	}
}

func TestWithDefaults_KeepsNegativeRetries(t *testing.T) {
	cfg := withDefaults(settings.Redis{MaxRetries: -1})
	if cfg.MaxRetries != -1 {
		t.Errorf("MaxRetries = %d, want -1", cfg.MaxRetries)
	}
	if cfg.PoolSize != defaultPoolSize {
		t.Errorf("PoolSize = %d, want %d", cfg.PoolSize, defaultPoolSize)
	}
}

func TestNewConnection_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cfg := &settings.Redis{Host: "127.0.0.1", Port: 1, DialTimeout: 1, MaxRetries: -1}
	_, err := NewConnection(ctx, cfg)
	if !errors.Is(err, ErrConnectionFailed) || !errors.Is(err, ErrPingFailed) {
		t.Fatalf("NewConnection() error = %v, want ErrConnectionFailed and ErrPingFailed", err)
	}
	if cfg.PoolSize != 0 {
		t.Errorf("caller config was modified: PoolSize = %d", cfg.PoolSize)
	}
}

func TestListSink_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	if !isDockerRunning(ctx) {
		t.Skip("Docker is not running, skipping integration test")
	}

	host, port, terminate := setupRedisContainer(ctx, t)
	defer terminate()

	engine, err := NewConnection(ctx, &settings.Redis{Host: host, Port: port})
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer engine.Close()

	t.Run("AppendsInOrder", func(t *testing.T) {
		sink := NewListSink[testItem](engine.Client(), "items:ordered", 0)

		first := buffer.NewLinkedList(testItem{ID: "a", Value: 1}, testItem{ID: "b", Value: 2})
		second := buffer.NewLinkedList(testItem{ID: "c", Value: 3})
		for _, b := range []*buffer.LinkedList[testItem]{first, second} {
			if err := sink.Consume(ctx, b); err != nil {
				t.Fatalf("Consume() error = %v", err)
			}
		}

		raw, err := engine.Client().LRange(ctx, "items:ordered", 0, -1).Result()
		if err != nil {
			t.Fatalf("LRange() error = %v", err)
		}
		if len(raw) != 3 {
			t.Fatalf("list length = %d, want 3", len(raw))
		}
		for i, want := range []string{"a", "b", "c"} {
			var got testItem
			if err := json.Unmarshal([]byte(raw[i]), &got); err != nil {
				t.Fatalf("unmarshal element %d: %v", i, err)
			}
			if got.ID != want {
				t.Errorf("element %d id = %q, want %q", i, got.ID, want)
			}
		}
	})

	t.Run("TrimsToMaxLen", func(t *testing.T) {
		sink := NewListSink[testItem](engine.Client(), "items:capped", 2)

		batch := buffer.NewLinkedList(testItem{ID: "x"}, testItem{ID: "y"}, testItem{ID: "z"})
		if err := sink.Consume(ctx, batch); err != nil {
			t.Fatalf("Consume() error = %v", err)
		}

		n, err := engine.Client().LLen(ctx, "items:capped").Result()
		if err != nil {
			t.Fatalf("LLen() error = %v", err)
		}
		if n != 2 {
			t.Errorf("list length = %d, want 2", n)
		}
	})
}

func setupRedisContainer(ctx context.Context, t *testing.T) (string, int, func()) {
	req := testcontainers.ContainerRequest{
		Image:        redisImage,
		ExposedPorts: []string{redisPort},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}

	endpoint, err := container.PortEndpoint(ctx, redisPort, "tcp")
	if err != nil {
		container.Terminate(ctx)
		t.Fatalf("failed to get container endpoint: %v", err)
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		container.Terminate(ctx)
		t.Fatalf("failed to parse endpoint %q: %v", endpoint, err)
	}
	port, _ := strconv.Atoi(u.Port())

	terminate := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	}

	return u.Hostname(), port, terminate
}

func isDockerRunning(ctx context.Context) bool {
	cmd := exec.CommandContext(ctx, "docker", "info")
	if err := cmd.Run(); err != nil {
		return false
	}
	return true
}

// Command batchd accepts items over HTTP and delivers them in paced batches
// to a configured sink.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/huynhanx03/batchcollector/pkg/ingest"
	"github.com/huynhanx03/batchcollector/pkg/logger"
	"github.com/huynhanx03/batchcollector/pkg/mq/batcher"
	"github.com/huynhanx03/batchcollector/pkg/settings"
	"github.com/huynhanx03/batchcollector/pkg/timer"
	"github.com/huynhanx03/batchcollector/pkg/unique"
	"github.com/huynhanx03/batchcollector/pkg/utils"
)

const readHeaderTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "batchd:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := settings.Load(ctx)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.Server.Mode)

	out, err := newSink(ctx, cfg, log)
	if err != nil {
		return err
	}

	collector, err := batcher.New[ingest.Item](
		batcher.Timeout(out.consumer, utils.ToDuration(cfg.Sink.Timeout)),
		cfg.Batching.RateLimiting(),
		batcher.WithName(cfg.Batching.Name),
		batcher.WithLogger(log),
		batcher.WithTickInterval(cfg.Batching.TickInterval()),
	)
	if err != nil {
		return multierr.Append(err, out.close(context.Background()))
	}

	ids, err := unique.NewSnowflakeNode(cfg.IDs, timer.RealClock)
	if err != nil {
		collector.Destroy()
		return multierr.Append(err, out.close(context.Background()))
	}

	svc := ingest.NewService(cfg.Batching.Name, collector, ids, timer.RealClock, log)
	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           ingest.NewRouter(svc, log),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("batchd listening",
			zap.String("addr", srv.Addr),
			zap.String("sink", cfg.Sink.Kind),
			zap.String("collector", collector.Name()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("batchd shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), utils.ToDuration(cfg.Server.ShutdownTimeout))
		defer cancel()

		return shutdown(shutdownCtx, srv, collector, out, log)
	})

	return g.Wait()
}

// shutdown stops accepting requests, posts whatever the collector still
// holds and waits for the consumers before closing the sink.
func shutdown(ctx context.Context, srv *http.Server, collector *batcher.Collector[ingest.Item], out *sink, log *zap.Logger) error {
	var errs error

	if err := srv.Shutdown(ctx); err != nil {
		errs = multierr.Append(errs, err)
	}

	if err := collector.ForcePostRemainingBatches(); err != nil {
		errs = multierr.Append(errs, err)
	}
	collector.Destroy()

	if err := collector.Wait(ctx); err != nil {
		log.Warn("consumers still running at shutdown", zap.Error(err))
		errs = multierr.Append(errs, err)
	}

	return multierr.Append(errs, out.close(ctx))
}

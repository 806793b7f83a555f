package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mqtli-go/mqtli/internal/infrastructure/config"
	"github.com/mqtli-go/mqtli/internal/infrastructure/logging"
	"github.com/mqtli-go/mqtli/internal/infrastructure/mqtt"
	"github.com/mqtli-go/mqtli/internal/sqlsink"
)

// shutdownDrainTimeout bounds how long Run waits for an in-flight dispatch
// to finish once ctx is cancelled, per spec.md §5's "drain in-flight
// pipelines with a bounded deadline".
const shutdownDrainTimeout = 5 * time.Second

// Run connects the MQTT session and drives cfg's run mode until ctx is
// cancelled or, for finite publish-only configurations, every trigger has
// exhausted its count and no subscription is active (spec.md §4.4).
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) error {
	sqlSink, err := openSQLSink(cfg)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	defer closeSQLSink(sqlSink, log)

	var fwd forwarder
	client, err := mqtt.Connect(cfg.Broker, fwd.Handle, log)
	if err != nil {
		return fmt.Errorf("engine: connecting to broker: %w", err)
	}
	defer func() {
		log.Info("disconnecting from broker")
		client.Disconnect()
	}()
	log.Info("connected to broker", "host", cfg.Broker.Host, "port", cfg.Broker.Port, "client_id", cfg.Broker.ClientID)

	var wg sync.WaitGroup
	tracked := func(dispatch func(context.Context, mqtt.InboundMessage)) mqtt.Handler {
		return func(msg mqtt.InboundMessage) {
			wg.Add(1)
			defer wg.Done()
			dispatch(ctx, msg)
		}
	}

	switch mode(cfg.Mode) {
	case modeSparkplug:
		return runSparkplugMode(ctx, cfg, client, log, &fwd, tracked, &wg)
	default:
		return runTopicMode(ctx, cfg, client, sqlSink, log, &fwd, tracked, &wg)
	}
}

type runMode string

const (
	modeDefault   runMode = ""
	modePublish   runMode = "publish"
	modeSubscribe runMode = "subscribe"
	modeSparkplug runMode = "sp"
)

func mode(s string) runMode {
	switch s {
	case "sparkplug", "sp":
		return modeSparkplug
	case "publish":
		return modePublish
	case "subscribe":
		return modeSubscribe
	default:
		return modeDefault
	}
}

// forwarder lets Run hand mqtt.Connect a Handler before the mode-specific
// dispatcher exists to receive messages. Set must be called before any
// subscription is registered; nothing is delivered before that happens.
type forwarder struct {
	mu sync.Mutex
	fn mqtt.Handler
}

func (f *forwarder) Handle(msg mqtt.InboundMessage) {
	f.mu.Lock()
	fn := f.fn
	f.mu.Unlock()
	if fn != nil {
		fn(msg)
	}
}

func (f *forwarder) Set(fn mqtt.Handler) {
	f.mu.Lock()
	f.fn = fn
	f.mu.Unlock()
}

func openSQLSink(cfg *config.Config) (*sqlsink.Sink, error) {
	if cfg.SqlStorage == nil {
		return nil, nil
	}
	driver, err := sqlsink.ParseDriver(cfg.SqlStorage.Driver)
	if err != nil {
		return nil, fmt.Errorf("sql_storage: %w", err)
	}
	sink, err := sqlsink.Open(driver, cfg.SqlStorage.ConnectionString, "")
	if err != nil {
		return nil, fmt.Errorf("sql_storage: %w", err)
	}
	return sink, nil
}

func closeSQLSink(sink *sqlsink.Sink, log *logging.Logger) {
	if sink == nil {
		return
	}
	log.Info("closing SQL sink")
	if err := sink.Close(); err != nil {
		log.Error("error closing SQL sink", "error", err)
	}
}

// drain waits up to shutdownDrainTimeout for every tracked in-flight
// dispatch to return.
func drain(wg *sync.WaitGroup, log *logging.Logger) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownDrainTimeout):
		log.Warn("engine: shutdown drain deadline exceeded, disconnecting anyway")
	}
}

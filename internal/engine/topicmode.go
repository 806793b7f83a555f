package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/mqtli-go/mqtli/internal/infrastructure/config"
	"github.com/mqtli-go/mqtli/internal/infrastructure/logging"
	"github.com/mqtli-go/mqtli/internal/infrastructure/mqtt"
	"github.com/mqtli-go/mqtli/internal/sqlsink"
	"github.com/mqtli-go/mqtli/internal/topicengine"
	"github.com/mqtli-go/mqtli/internal/trigger"
)

// runTopicMode serves the default multi-topic run and the `publish`/
// `subscribe` subcommands alike: all three operate over cfg.Topics, which
// cmd/mqtli populates either from the YAML `topics[]` table or, for the
// single-topic subcommands, from that subcommand's own flags.
func runTopicMode(
	ctx context.Context,
	cfg *config.Config,
	client *mqtt.Client,
	sqlSink *sqlsink.Sink,
	log *logging.Logger,
	fwd *forwarder,
	tracked func(func(context.Context, mqtt.InboundMessage)) mqtt.Handler,
	wg *sync.WaitGroup,
) error {
	bound, err := topicengine.Bind(cfg.Topics, topicengine.Deps{Publisher: client, SqlSink: sqlSink})
	if err != nil {
		return err
	}
	eng := topicengine.NewEngine(bound, log)

	fwd.Set(tracked(func(ctx context.Context, msg mqtt.InboundMessage) {
		eng.Dispatch(ctx, msg.Topic, msg.Payload, msg.QoS, msg.Retain)
	}))

	for pattern, qos := range eng.SubscriptionPatterns() {
		if err := client.Subscribe(pattern, qos); err != nil {
			return err
		}
		log.Info("subscribed", "pattern", pattern, "qos", qos)
	}

	triggers := eng.AllTriggers()
	scheduler := trigger.NewScheduler(triggers)
	scheduler.Start(ctx, triggers)

	allDone := scheduler.AllFiniteDone()
	events := scheduler.Events
	for {
		select {
		case <-ctx.Done():
			drain(wg, log)
			return nil

		case tick, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			publishTick(ctx, eng, client, tick, log)

		case <-allDone:
			if client.SubscriptionCount() == 0 {
				log.Info("all triggers exhausted and no active subscriptions, shutting down")
				drain(wg, log)
				return nil
			}
			allDone = nil
		}
	}
}

func publishTick(ctx context.Context, eng *topicengine.Engine, client *mqtt.Client, tick trigger.Tick, log *logging.Logger) {
	be, ok := eng.EntryForTrigger(tick.Name)
	if !ok {
		return
	}

	messages, err := eng.AssemblePublish(be)
	if err != nil {
		if errors.Is(err, topicengine.ErrNullInput) || errors.Is(err, topicengine.ErrNoPublishResult) {
			return
		}
		log.Warn("engine: assemble publish", "trigger", tick.Name, "error", err)
		return
	}

	for _, m := range messages {
		if err := client.Publish(ctx, m.Topic, m.QoS, m.Retain, m.Bytes); err != nil {
			log.Warn("engine: publish", "topic", m.Topic, "error", err)
		}
	}
}

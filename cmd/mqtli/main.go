// Command mqtli is a multi-topic MQTT client: it connects to a broker,
// subscribes and publishes according to a configured topic table, decodes
// and converts payloads across text/JSON/YAML/protobuf/Sparkplug-B, and can
// run single-shot publish/subscribe commands or a Sparkplug Network Mode
// console.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mqtli-go/mqtli/cmd/mqtli/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

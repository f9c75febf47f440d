// Command uaserve-sim runs a simulated OPC UA server subscription session.
//
// It builds an in-memory address space with synthetic process variables,
// wires a publish engine and one subscription, and feeds the monitored
// items from a simulation loop. An interactive console drives the client
// side: parking publish requests, acknowledging, republishing.
//
// Usage:
//
//	uaserve-sim [flags]
//
// Flags:
//
//	-interval duration  Publishing interval (default 1s)
//	-keepalive uint     Max keep-alive count (default 5)
//	-lifetime uint      Life-time count (default 15)
//	-limits string      Server limits YAML file
//	-log-level string   Log level: debug, info, warn, error (default "info")
//	-capture string     Write protocol events to this .ualog file
//	-announce           Advertise the endpoint over mDNS
//	-port int           Advertised port (default 4840)
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/uaserve/uaserve-go/pkg/address"
	"github.com/uaserve/uaserve-go/pkg/config"
	"github.com/uaserve/uaserve-go/pkg/discovery"
	"github.com/uaserve/uaserve-go/pkg/eventlog"
	"github.com/uaserve/uaserve-go/pkg/ua"
)

func main() {
	interval := flag.Duration("interval", time.Second, "publishing interval")
	keepAlive := flag.Uint("keepalive", 5, "max keep-alive count")
	lifetime := flag.Uint("lifetime", 15, "life-time count")
	limitsFile := flag.String("limits", "", "server limits YAML file")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	capturePath := flag.String("capture", "", "write protocol events to this .ualog file")
	announce := flag.Bool("announce", false, "advertise the endpoint over mDNS")
	port := flag.Int("port", discovery.DefaultPort, "advertised port")
	flag.Parse()

	logger := newLogger(*logLevel)
	slog.SetDefault(logger)

	limits := config.DefaultLimits()
	if *limitsFile != "" {
		var err error
		limits, err = config.Load(*limitsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "uaserve-sim: %v\n", err)
			os.Exit(1)
		}
	}

	capture := eventlog.Logger(eventlog.NoopLogger{})
	if *capturePath != "" {
		fileLogger, err := eventlog.NewFileLogger(*capturePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "uaserve-sim: %v\n", err)
			os.Exit(1)
		}
		defer fileLogger.Close()
		capture = fileLogger
	}

	if *announce {
		advertiser := discovery.NewAdvertiser(discovery.AdvertiserConfig{})
		err := advertiser.Advertise(discovery.ServerInfo{
			Name:         "uaserve-sim",
			Port:         uint16(*port),
			Path:         "/uaserve",
			Capabilities: []string{"DA"},
		})
		if err != nil {
			logger.Warn("mdns advertising failed", "error", err)
		} else {
			defer advertiser.Shutdown()
			logger.Info("advertising endpoint", "service", discovery.ServiceType, "port", *port)
		}
	}

	sim := newSimulation(logger, capture, simConfig{
		SessionID:          uuid.New(),
		PublishingInterval: clampInterval(*interval, limits),
		MaxKeepAliveCount:  uint32(*keepAlive),
		LifeTimeCount:      uint32(*lifetime),
	})
	sim.start()
	defer sim.stop()

	console := newConsole(sim)
	if err := console.run(); err != nil {
		fmt.Fprintf(os.Stderr, "uaserve-sim: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func clampInterval(interval time.Duration, limits config.Limits) time.Duration {
	if interval < limits.MinPublishingInterval() {
		return limits.MinPublishingInterval()
	}
	return interval
}

// simConfig carries the subscription settings for the simulation.
type simConfig struct {
	SessionID          uuid.UUID
	PublishingInterval time.Duration
	MaxKeepAliveCount  uint32
	LifeTimeCount      uint32
}

// buildSpace creates the simulated process variables.
func buildSpace() (*address.MemorySpace, []*address.VariableNode) {
	space := address.NewMemorySpace()

	nodes := []*address.VariableNode{
		address.NewVariableNode(ua.NewStringNodeID(1, "Boiler.Temperature"),
			ua.QualifiedName{NamespaceIndex: 1, Name: "Temperature"}, address.DataTypeDouble, -1),
		address.NewVariableNode(ua.NewStringNodeID(1, "Boiler.Pressure"),
			ua.QualifiedName{NamespaceIndex: 1, Name: "Pressure"}, address.DataTypeDouble, -1),
		address.NewVariableNode(ua.NewStringNodeID(1, "Boiler.FillLevel"),
			ua.QualifiedName{NamespaceIndex: 1, Name: "FillLevel"}, address.DataTypeDouble, -1),
	}
	for _, node := range nodes {
		node.SetValue(0.0)
		space.AddNode(node)
	}
	return space, nodes
}

package discovery

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/enbility/zeroconf/v3"
)

// mDNS service parameters for OPC UA discovery (Part 12).
const (
	ServiceType = "_opcua._tcp"
	Domain      = "local."

	// DefaultPort is the registered OPC UA TCP port.
	DefaultPort = 4840
)

// ServerInfo describes the server endpoint being advertised.
type ServerInfo struct {
	// Name is the mDNS instance name, typically the application name.
	Name string

	// Port the server listens on. 0 uses DefaultPort.
	Port uint16

	// Path is the endpoint path component, e.g. "/uaserve".
	Path string

	// Capabilities are the server capability identifiers, e.g. "DA" for
	// data access. Encoded into the caps TXT record.
	Capabilities []string
}

// AdvertiserConfig configures advertiser behavior.
type AdvertiserConfig struct {
	// Interface restricts advertising to one network interface.
	// Empty means all interfaces.
	Interface string

	// TTL is the mDNS record time-to-live. 0 uses the zeroconf default.
	TTL time.Duration
}

// Advertiser announces the server endpoint over mDNS so clients can find it
// without a discovery server.
type Advertiser struct {
	config AdvertiserConfig

	mu     sync.Mutex
	server *zeroconf.Server
}

// NewAdvertiser creates an mDNS advertiser.
func NewAdvertiser(config AdvertiserConfig) *Advertiser {
	return &Advertiser{config: config}
}

// getInterfaces returns the network interfaces to use for advertising.
// Returns nil to use all interfaces.
func (a *Advertiser) getInterfaces() []net.Interface {
	if a.config.Interface == "" {
		return nil
	}

	iface, err := net.InterfaceByName(a.config.Interface)
	if err != nil {
		return nil
	}
	return []net.Interface{*iface}
}

// Advertise starts announcing the server. A previous announcement is
// replaced.
func (a *Advertiser) Advertise(info ServerInfo) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}

	port := int(info.Port)
	if port == 0 {
		port = DefaultPort
	}

	txt := EncodeTXT(info)

	var opts []zeroconf.ServerOption
	if a.config.TTL > 0 {
		opts = append(opts, zeroconf.TTL(uint32(a.config.TTL.Seconds())))
	}

	server, err := zeroconf.Register(
		info.Name,
		ServiceType,
		Domain,
		port,
		txt,
		a.getInterfaces(),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to register opcua service: %w", err)
	}

	a.server = server
	return nil
}

// Shutdown stops the announcement. Safe to call when not advertising.
func (a *Advertiser) Shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
}

package eventloop

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// parseEndpoint splits a "bind_address:port" endpoint (spec §3) into an
// IPv4 address and numeric port.
func parseEndpoint(endpoint string) (addr [4]byte, port int, err error) {
	host, portStr, found := strings.Cut(endpoint, ":")
	if !found {
		return addr, 0, fmt.Errorf("eventloop: endpoint %q missing :port", endpoint)
	}

	p, err := strconv.Atoi(portStr)
	if err != nil {
		return addr, 0, fmt.Errorf("eventloop: endpoint %q has a non-numeric port: %w", endpoint, err)
	}

	if host == "" {
		host = "0.0.0.0"
	}
	ip := net.ParseIP(host)
	if ip == nil {
		resolved, err := net.ResolveIPAddr("ip4", host)
		if err != nil {
			return addr, 0, fmt.Errorf("eventloop: endpoint %q has an unresolvable host: %w", endpoint, err)
		}
		ip = resolved.IP
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return addr, 0, fmt.Errorf("eventloop: endpoint %q is not an IPv4 address", endpoint)
	}
	copy(addr[:], ip4)

	return addr, p, nil
}

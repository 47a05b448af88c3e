// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

// ErrNoFreePort is returned by ListenFirstFree when every port in the
// range is taken.
var ErrNoFreePort = errors.New("no free port")

// ListenFirstFree binds a TCP listener on host at the first free port
// in [first, last], probing sequentially. The listener is returned open:
// probing by bind-then-close would let another process take the port
// before the caller binds it again.
func ListenFirstFree(host string, first, last int) (net.Listener, error) {
	if first < 1 || last > 65535 || first > last {
		return nil, fmt.Errorf("invalid port range %d-%d", first, last)
	}
	var lastErr error
	for port := first; port <= last; port++ {
		listener, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
		if err == nil {
			return listener, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w on %s in %d-%d (last error: %v)", ErrNoFreePort, host, first, last, lastErr)
}

// Package apps implements the wordfetch command-line applications.
package apps

import (
	"context"
	"net"
	"strconv"
)

// App is a runnable command.
type App interface {
	Run(ctx context.Context, args []string) error
}

func joinHostPort(ip string, port int) string {
	return net.JoinHostPort(ip, strconv.Itoa(port))
}

package cli

import (
	"fmt"
	"io"
	"strings"
)

const (
	ModeAPI    = "api"
	ModeWorker = "order-worker"
	ModeNotify = "notification-service"
)

// isKnownMode checks if the provided mode name is known.
func isKnownMode(s string) (string, bool) {
	switch s {
	case ModeAPI, "http":
		return ModeAPI, true
	case ModeWorker, "worker":
		return ModeWorker, true
	case ModeNotify, "notify":
		return ModeNotify, true
	default:
		return "", false
	}
}

// ParseMode supports:
//
//	--mode=<value>
//	<value> (subcommand shorthand), e.g., `api`
func ParseMode(args []string) (string, []string, error) {
	var mode string
	var out []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "--mode=") {
			mode = strings.TrimPrefix(arg, "--mode=")
			continue
		}

		if mode == "" {
			if m, ok := isKnownMode(arg); ok {
				mode = m
				continue
			}
		}
		out = append(out, arg)
	}

	if mode == "" {
		return "", out, nil
	}

	if m, ok := isKnownMode(mode); ok {
		return m, out, nil
	}
	return "", out, fmt.Errorf("unknown mode %q", mode)
}

// PrintUsage prints the usage information with examples.
func PrintUsage(w io.Writer) {
	fmt.Fprintln(w, `Usage:
  ./product-catalog --mode=<service>

Services (modes):
  api                     HTTP API for products and orders
  order-worker            Queue consumer that processes orders
  notification-service    Subscriber that prints order events

Configuration comes from the environment (.env is autoloaded); see
internal/shared/config for the full list of variables.

Examples:
  ./product-catalog --mode=api
  MODE=local ./product-catalog api
  ./product-catalog --mode=order-worker
  ./product-catalog --mode=notification-service`)
}

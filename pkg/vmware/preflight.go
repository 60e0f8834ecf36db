package vmware

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/vmware/govmomi"
	"go.uber.org/zap"
)

// Report is what the preflight learned about the target.
type Report struct {
	Host       string
	Thumbprint string
	Product    string
	Version    string
	APIVersion string
}

// WaitForLogin retries Login with exponential backoff until it succeeds,
// the credentials are rejected or maxElapsed has passed.
func WaitForLogin(ctx context.Context, host, username, password string, maxElapsed time.Duration) (*govmomi.Client, error) {
	log := zap.S().Named("vmware")

	operation := func() (*govmomi.Client, error) {
		c, err := Login(ctx, host, username, password)
		if err != nil {
			if IsInvalidLogin(err) {
				return nil, backoff.Permanent(err)
			}
			log.Debugw("vCenter not reachable yet", "host", host, "error", err)
			return nil, err
		}
		return c, nil
	}

	c, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(maxElapsed),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to log in to %s: %w", host, err)
	}
	return c, nil
}

// Preflight checks that the target answers with valid credentials before
// any installer run, and reads the thumbprint to type at the prompt.
func Preflight(ctx context.Context, host, username, password string, maxElapsed time.Duration) (*Report, error) {
	c, err := WaitForLogin(ctx, host, username, password, maxElapsed)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = c.Logout(context.WithoutCancel(ctx))
	}()

	thumbprint, err := Thumbprint(host)
	if err != nil {
		return nil, err
	}

	about := c.ServiceContent.About
	return &Report{
		Host:       c.URL().Host,
		Thumbprint: thumbprint,
		Product:    about.FullName,
		Version:    about.Version,
		APIVersion: about.ApiVersion,
	}, nil
}

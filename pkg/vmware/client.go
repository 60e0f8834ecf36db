package vmware

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/vim25/soap"
	"github.com/vmware/govmomi/vim25/types"
	"go.uber.org/zap"
)

// ServiceURL turns the host typed at the installer prompt into the vCenter
// SDK endpoint. host may carry a scheme and port.
func ServiceURL(host string) (*url.URL, error) {
	u, err := soap.ParseURL(host)
	if err != nil {
		return nil, fmt.Errorf("invalid vCenter host %q: %w", host, err)
	}
	if u == nil {
		return nil, fmt.Errorf("invalid vCenter host %q", host)
	}
	return u, nil
}

// Login opens an authenticated session against host. Certificate checks are
// skipped: the installer under test decides whether the host is trusted.
func Login(ctx context.Context, host, username, password string) (*govmomi.Client, error) {
	u, err := ServiceURL(host)
	if err != nil {
		return nil, err
	}
	u.User = url.UserPassword(username, password)

	c, err := govmomi.NewClient(ctx, u, true)
	if err != nil {
		return nil, err
	}

	zap.S().Named("vmware").Debugw("logged in", "host", u.Host, "username", username, "api_version", c.ServiceContent.About.ApiVersion)

	return c, nil
}

// IsInvalidLogin reports whether err is the fault vCenter returns for bad
// credentials.
func IsInvalidLogin(err error) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if soap.IsSoapFault(err) {
			_, ok := soap.ToSoapFault(err).VimFault().(types.InvalidLogin)
			return ok
		}
	}
	return false
}

package vmware

import (
	"context"
	"fmt"

	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/vim25"
)

// IsRegistered reports whether the extension key is registered on the
// vCenter behind client. The e2e suite uses it to confirm what install.sh and
// uninstall.sh claim.
func IsRegistered(ctx context.Context, client *vim25.Client, key string) (bool, error) {
	em, err := object.GetExtensionManager(client)
	if err != nil {
		return false, fmt.Errorf("failed to get extension manager: %w", err)
	}

	e, err := em.Find(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to find extension %s: %w", key, err)
	}
	return e != nil, nil
}

package vmware

import (
	"context"
	"fmt"

	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/vim25"
	"github.com/vmware/govmomi/vim25/types"
)

// PluginPrivileges are the privileges install.sh and uninstall.sh need to
// manage the plugin extension.
var PluginPrivileges = []string{
	"Extension.Register",
	"Extension.Update",
	"Extension.Unregister",
}

// ValidateUserPrivilegesOnEntity checks whether the specified user has all the required privileges
// on a given vSphere entity (e.g., root folder, datacenter).
func ValidateUserPrivilegesOnEntity(
	ctx context.Context,
	client *vim25.Client,
	ref types.ManagedObjectReference,
	requiredPrivileges []string,
	username string,
) error {
	authManager := object.NewAuthorizationManager(client)

	results, err := authManager.FetchUserPrivilegeOnEntities(ctx, []types.ManagedObjectReference{ref}, username)
	if err != nil {
		return fmt.Errorf("failed to fetch user privileges: %w", err)
	}

	if len(results) == 0 {
		return fmt.Errorf("no privileges returned for user %s", username)
	}

	return missingPrivileges(username, results[0].Privileges, requiredPrivileges)
}

// ValidatePluginPrivileges checks PluginPrivileges on the inventory root.
func ValidatePluginPrivileges(ctx context.Context, client *vim25.Client, username string) error {
	return ValidateUserPrivilegesOnEntity(ctx, client, client.ServiceContent.RootFolder, PluginPrivileges, username)
}

func missingPrivileges(username string, granted, required []string) error {
	grantedMap := make(map[string]bool, len(granted))
	for _, p := range granted {
		grantedMap[p] = true
	}

	var missing []string
	for _, req := range required {
		if !grantedMap[req] {
			missing = append(missing, req)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("user %s is missing required privileges: %v", username, missing)
	}

	return nil
}

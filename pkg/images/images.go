package images

import (
	"fmt"
	"sort"
)

// Environment selects the registry deployment images are pulled from.
type Environment string

const (
	EnvironmentDev   Environment = "dev"
	EnvironmentStage Environment = "stage"
	EnvironmentProd  Environment = "prod"

	// EnvVar is read once at startup by ResolveEnvironment.
	EnvVar = "INSTALLER_DRIVER_ENVIRONMENT"
)

func ParseEnvironment(s string) (Environment, error) {
	switch Environment(s) {
	case EnvironmentDev, EnvironmentStage, EnvironmentProd:
		return Environment(s), nil
	default:
		return "", fmt.Errorf("invalid environment %q: must be 'dev', 'stage' or 'prod'", s)
	}
}

// ResolveEnvironment reads the environment from lookup (normally
// os.LookupEnv). An unset variable means prod.
func ResolveEnvironment(lookup func(string) (string, bool)) (Environment, error) {
	v, ok := lookup(EnvVar)
	if !ok || v == "" {
		return EnvironmentProd, nil
	}
	return ParseEnvironment(v)
}

var registries = map[Environment]string{
	EnvironmentDev:   "registry.dev.example.com/vcenter-plugin",
	EnvironmentStage: "stg.nvcr.io/nvidia/vcenter-plugin",
	EnvironmentProd:  "nvcr.io/nvidia/vcenter-plugin",
}

// deployment images and the repository each one is published under
var repositories = map[string]string{
	"plugin-backend":  "backend",
	"plugin-ui":       "ui",
	"plugin-registry": "registry",
	"plugin-agent":    "agent",
}

// QualifiedName returns the registry-qualified name of a deployment image.
func QualifiedName(image string, env Environment) (string, error) {
	registry, ok := registries[env]
	if !ok {
		return "", fmt.Errorf("invalid environment %q", env)
	}
	repo, ok := repositories[image]
	if !ok {
		return "", fmt.Errorf("unknown deployment image %q", image)
	}
	return registry + "/" + repo, nil
}

// Names lists the known deployment images in sorted order.
func Names() []string {
	names := make([]string, 0, len(repositories))
	for name := range repositories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/kubev2v/installer-driver/test/e2e/infra"
)

type configuration struct {
	InfraMode    string // "vcsim" or "external"
	Host         string
	Username     string
	Password     string
	InstallerDir string
	LogDir       string
	ExtensionKey string
	Timeout      time.Duration
	KeepLogs     bool
}

var (
	cfg          configuration
	infraManager infra.InfraManager
)

func (c configuration) Validate() error {
	if c.InfraMode != "vcsim" && c.InfraMode != "external" {
		return fmt.Errorf("invalid infra-mode %q: must be 'vcsim' or 'external'", c.InfraMode)
	}
	if c.InfraMode == "external" && c.Host == "" {
		return fmt.Errorf("host is required in external mode")
	}
	if c.InstallerDir != "" {
		if _, err := os.Stat(c.InstallerDir); err != nil {
			return fmt.Errorf("failed to stat installer dir: %v", err)
		}
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func main() {
	flag.StringVar(&cfg.InfraMode, "infra-mode", "vcsim", "Infrastructure mode: 'vcsim' (in-process simulator) or 'external' (real vCenter)")
	flag.StringVar(&cfg.Host, "host", "", "vCenter address in external mode")
	flag.StringVar(&cfg.Username, "username", "administrator@vsphere.local", "vCenter administrator in external mode")
	flag.StringVar(&cfg.Password, "password", "", "vCenter administrator password in external mode")
	flag.StringVar(&cfg.InstallerDir, "installer-dir", "", "Directory holding install.sh and uninstall.sh; installer specs are skipped when empty")
	flag.StringVar(&cfg.LogDir, "log-dir", "", "Directory receiving installer transcripts (default: a temporary directory)")
	flag.StringVar(&cfg.ExtensionKey, "extension-key", "", "Plugin extension key checked after install and uninstall")
	flag.DurationVar(&cfg.Timeout, "timeout", 180*time.Second, "Bound on every installer prompt wait")
	flag.BoolVar(&cfg.KeepLogs, "keep-logs", false, "Keep the temporary transcript directory after completion (useful for debugging)")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("failed to validate configuration: %v", err)
	}

	switch cfg.InfraMode {
	case "vcsim":
		infraManager = infra.NewSimulatorInfraManager()
	case "external":
		infraManager = infra.NewExternalInfraManager(infra.Target{
			Host:     cfg.Host,
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}

	RegisterFailHandler(Fail)
	if !RunSpecs(&testing.T{}, "E2E Suite") {
		os.Exit(1)
	}
}

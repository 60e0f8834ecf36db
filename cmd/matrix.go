package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kubev2v/installer-driver/internal/models"
	"github.com/kubev2v/installer-driver/internal/services"
)

// scenarioFile is the on-disk form of a matrix. Target fields left empty
// fall back to the global target flags.
type scenarioFile struct {
	Scenarios []scenarioEntry `mapstructure:"scenarios"`
}

type scenarioEntry struct {
	Name             string `mapstructure:"name"`
	Operation        string `mapstructure:"operation"`
	Host             string `mapstructure:"host"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	TrustFingerprint *bool  `mapstructure:"trust-fingerprint"`
	Fingerprint      string `mapstructure:"fingerprint"`
	ExpectFailure    bool   `mapstructure:"expect-failure"`
	Force            bool   `mapstructure:"force"`
}

// loadScenarios reads a yaml, json or toml scenario file.
func loadScenarios(path string, base models.Target) ([]models.Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read scenarios %s: %w", path, err)
	}

	var file scenarioFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to parse scenarios %s: %w", path, err)
	}
	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios in %s", path)
	}

	scenarios := make([]models.Scenario, 0, len(file.Scenarios))
	for i, e := range file.Scenarios {
		op, err := models.ParseOperation(e.Operation)
		if err != nil {
			return nil, fmt.Errorf("scenario %d (%s): %w", i, e.Name, err)
		}

		target := base
		if e.Host != "" {
			target.Host = e.Host
		}
		if e.Username != "" {
			target.Username = e.Username
		}
		if e.Password != "" {
			target.Password = e.Password
		}
		if e.TrustFingerprint != nil {
			target.TrustFingerprint = *e.TrustFingerprint
		}
		if e.Fingerprint != "" {
			target.Fingerprint = e.Fingerprint
		}

		name := e.Name
		if name == "" {
			name = fmt.Sprintf("%s-%d", op, i)
		}

		scenarios = append(scenarios, models.Scenario{
			Name:          name,
			Operation:     op,
			Target:        target,
			ExpectFailure: e.ExpectFailure,
			Force:         e.Force,
		})
	}

	return scenarios, nil
}

func NewMatrixCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrix FILE",
		Short: "Run a file of scenarios concurrently, each with its own log directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			workers, _ := cmd.Flags().GetInt("workers")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			scenarios, err := loadScenarios(args[0], cfg.ModelTarget())
			if err != nil {
				return err
			}
			for _, sc := range scenarios {
				if sc.Operation.IsUITests() {
					if err := resolveRunnerDir(cfg); err != nil {
						return err
					}
					break
				}
			}

			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			var recorder services.RunRecorder
			if st != nil {
				defer st.Close()
				recorder = st.Runs()
			}

			factory := func(logDir string) (services.InstallerDriver, services.UIRunner) {
				return newDriver(cfg, logDir), newRunner(cfg, logDir)
			}

			results := services.NewMatrixService(factory, recorder, cfg.Installer.LogDir, workers).Run(ctx, scenarios)

			failed := 0
			for _, r := range results {
				printScenario(cmd.OutOrStdout(), r)
				if !r.Passed() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().Int("workers", 2, "number of scenarios run at the same time")
	return cmd
}

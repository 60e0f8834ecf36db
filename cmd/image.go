package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kubev2v/installer-driver/internal/util"
	"github.com/kubev2v/installer-driver/pkg/images"
)

func NewImageCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "image [NAME...]",
		Short:     "Print the registry-qualified name of deployment images for the configured environment",
		ValidArgs: images.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			env, err := images.ParseEnvironment(cfg.Environment)
			if err != nil {
				return err
			}

			names := args
			if len(names) == 0 {
				names = images.Names()
			}

			for _, name := range names {
				if !util.Contains(images.Names(), name) {
					return fmt.Errorf("unknown image %q, expected one of %v", name, images.Names())
				}
				qualified, err := images.QualifiedName(name, env)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, qualified)
			}
			return nil
		},
	}
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zjrosen/menubar/internal/config"
	"github.com/zjrosen/menubar/internal/menufile"
)

var templateSave string

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print or save the built-in menu template",
	Long: `Print the built-in menu template, or save it to a file and point the
config at it with --save.

Examples:
  # Start a template of your own
  menubar template --save ~/.config/menubar/menu.yaml

  # Convert a template to normalized YAML
  menubar template -t ./menu.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		data := menufile.DefaultSource()
		if cfg.Template != "" {
			tmpl, err := menufile.Load(cfg.Template)
			if err != nil {
				return err
			}
			if data, err = menufile.Marshal(tmpl); err != nil {
				return err
			}
		}

		if templateSave == "" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}

		if err := os.MkdirAll(filepath.Dir(templateSave), 0o750); err != nil {
			return fmt.Errorf("creating template directory: %w", err)
		}
		if err := os.WriteFile(templateSave, data, 0o600); err != nil {
			return fmt.Errorf("writing template: %w", err)
		}
		abs, err := filepath.Abs(templateSave)
		if err != nil {
			return err
		}
		configPath := configPathForSave()
		if configPath == "" {
			return fmt.Errorf("no config file to update")
		}
		if err := config.SaveTemplate(configPath, abs); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved %s and set template in %s\n", abs, configPath)
		return err
	},
}

func init() {
	templateCmd.Flags().StringVarP(&templateSave, "save", "s", "", "write the template to this path and use it from the config")
	rootCmd.AddCommand(templateCmd)
}

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/menubar/internal/menu"
)

// compiledItem is the printed form of a compiled item.
type compiledItem struct {
	CommandID   int            `yaml:"commandId"`
	ID          string         `yaml:"id,omitempty"`
	Type        string         `yaml:"type"`
	Role        string         `yaml:"role,omitempty"`
	Label       string         `yaml:"label,omitempty"`
	Accelerator string         `yaml:"accelerator,omitempty"`
	Display     string         `yaml:"display,omitempty"`
	GroupID     int            `yaml:"groupId,omitempty"`
	Checked     bool           `yaml:"checked,omitempty"`
	Disabled    bool           `yaml:"disabled,omitempty"`
	Hidden      bool           `yaml:"hidden,omitempty"`
	Props       map[string]any `yaml:"props,omitempty"`
	Submenu     []compiledItem `yaml:"submenu,omitempty"`
}

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile the menu template and print the result",
	Long: `Compile the menu template and print the compiled menu as YAML.

Each item shows its command id, resolved type, role, label and the
accelerator as displayed on the selected platform. Radio items carry the
id of their group. Radio groups are reconciled as if the menu were shown.

Examples:
  # Compile the built-in template for macOS
  menubar compile --platform darwin

  # Check a template file
  menubar compile -t ./menu.toml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := newRuntime(cfg)
		if err != nil {
			return err
		}
		defer rt.shutdown()
		if err := willShowAll(rt.dispatcher, rt.root); err != nil {
			return err
		}
		return writeCompiled(cmd.OutOrStdout(), rt.root)
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

// willShowAll reconciles root and every submenu below it, as if each were
// opened in turn. It stops at the first error.
func willShowAll(d *menu.Dispatcher, root *menu.Menu) error {
	if err := d.WillShow(root); err != nil {
		return err
	}
	var err error
	root.Walk(func(it *menu.Item, _ int) {
		if sub := it.Submenu(); sub != nil && err == nil {
			if werr := d.WillShow(sub); werr != nil {
				err = fmt.Errorf("%s: %w", it.Label(), werr)
			}
		}
	})
	return err
}

func writeCompiled(w io.Writer, root *menu.Menu) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(describe(root)); err != nil {
		return fmt.Errorf("encoding compiled menu: %w", err)
	}
	return enc.Close()
}

func describe(m *menu.Menu) []compiledItem {
	out := make([]compiledItem, 0, m.Len())
	for i, it := range m.Items() {
		ci := compiledItem{
			CommandID:   it.CommandID(),
			ID:          it.ID(),
			Type:        string(it.Type()),
			Role:        string(it.Role()),
			Label:       it.Label(),
			Accelerator: it.EffectiveAccelerator(),
			Display:     strings.TrimRight(m.AcceleratorTextAt(i), "\x00"),
			Checked:     it.Checked(),
			Disabled:    !it.Enabled(),
			Hidden:      !it.Visible(),
			Props:       it.Props(),
		}
		if it.Type() == menu.TypeRadio {
			ci.GroupID = it.GroupID()
		}
		if sub := it.Submenu(); sub != nil {
			ci.Submenu = describe(sub)
		}
		out = append(out, ci)
	}
	return out
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/zjrosen/menubar/internal/accelerator"
	"github.com/zjrosen/menubar/internal/platform"
	"github.com/zjrosen/menubar/internal/ui/styles"
)

var displayPlatforms = []platform.Platform{platform.Darwin, platform.Windows, platform.Linux}

var accelCmd = &cobra.Command{
	Use:   "accel ACCELERATOR...",
	Short: "Show how accelerators display on each platform",
	Long: `Parse accelerators and show their display text on macOS, Windows and
Linux, and the terminal key that triggers them in menubar.

Examples:
  menubar accel CmdOrCtrl+Shift+Z Alt+F4 F11`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := accelRows(args)
		if err != nil {
			return err
		}
		headers := []string{"Accelerator"}
		for _, p := range displayPlatforms {
			headers = append(headers, p.String())
		}
		headers = append(headers, "terminal")

		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(styles.BorderColor)).
			Headers(headers...).
			Rows(rows...)
		_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return err
	},
}

func init() {
	rootCmd.AddCommand(accelCmd)
}

func accelRows(args []string) ([][]string, error) {
	rows := make([][]string, 0, len(args))
	for _, arg := range args {
		a, err := accelerator.Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", arg, err)
		}
		row := []string{arg}
		for _, p := range displayPlatforms {
			row = append(row, strings.TrimRight(accelerator.RenderString(arg, p), "\x00"))
		}
		key, ok := accelerator.TerminalKey(a)
		if !ok {
			key = "-"
		}
		rows = append(rows, append(row, key))
	}
	return rows, nil
}

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zjrosen/menubar/internal/accelerator"
	"github.com/zjrosen/menubar/internal/config"
	"github.com/zjrosen/menubar/internal/platform"
	"github.com/zjrosen/menubar/internal/roles"
	"github.com/zjrosen/menubar/internal/ui/markdown"
)

var rolesMarkdown bool

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the built-in menu item roles",
	Long: `List every role a menu item can take, with the label and accelerator it
gets on the selected platform. Native roles are performed by the OS on macOS
and do nothing when clicked in menubar.

Examples:
  menubar roles --platform darwin
  menubar roles --markdown > ROLES.md`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		md, err := rolesTable(cfg)
		if err != nil {
			return err
		}
		if rolesMarkdown {
			_, err = fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		}
		r, err := markdown.New(100, !isTerminal(cmd.OutOrStdout()))
		if err != nil {
			return err
		}
		out, err := r.Render(md)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	rolesCmd.Flags().BoolVar(&rolesMarkdown, "markdown", false, "print raw markdown")
	rootCmd.AddCommand(rolesCmd)
}

func rolesTable(c config.Config) (string, error) {
	p, err := c.PlatformValue()
	if err != nil {
		return "", err
	}
	reg := roles.New(platform.Static{OS: p, Name: c.AppName})

	var b strings.Builder
	fmt.Fprintf(&b, "# Roles on %s\n\n", p)
	b.WriteString("| Role | Label | Accelerator | Submenu | Native |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, role := range reg.Roles() {
		info, _ := reg.Lookup(string(role))
		accel := strings.TrimRight(accelerator.RenderString(info.Accelerator, p), "\x00")
		sub := ""
		if len(info.Submenu) > 0 {
			sub = fmt.Sprintf("%d items", len(info.Submenu))
		}
		native := ""
		if info.Native {
			native = "yes"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", role, escapeCell(info.Label), escapeCell(accel), sub, native)
	}
	return b.String(), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

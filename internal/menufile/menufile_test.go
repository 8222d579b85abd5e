package menufile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/menubar/internal/menu"
	"github.com/zjrosen/menubar/internal/platform"
	"github.com/zjrosen/menubar/internal/roles"
)

const yamlTemplate = `
menu:
  - role: editMenu
  - label: Options
    submenu:
      - label: Wrap
        type: checkbox
        checked: true
        accelerator: CmdOrCtrl+Shift+W
      - type: separator
      - label: Light
        type: radio
        enabled: false
        customProp: foo
`

const tomlTemplate = `
[[menu]]
role = "editMenu"

[[menu]]
label = "Options"

  [[menu.submenu]]
  label = "Wrap"
  type = "checkbox"
  checked = true
  accelerator = "CmdOrCtrl+Shift+W"

  [[menu.submenu]]
  type = "separator"

  [[menu.submenu]]
  label = "Light"
  type = "radio"
  enabled = false
  customProp = "foo"
`

const jsonTemplate = `{
  "menu": [
    {"role": "editMenu"},
    {"label": "Options", "submenu": [
      {"label": "Wrap", "type": "checkbox", "checked": true, "accelerator": "CmdOrCtrl+Shift+W"},
      {"type": "separator"},
      {"label": "Light", "type": "radio", "enabled": false, "customProp": "foo"}
    ]}
  ]
}`

func TestParse_AllFormatsAgree(t *testing.T) {
	for _, tc := range []struct {
		format Format
		data   string
	}{
		{YAML, yamlTemplate},
		{TOML, tomlTemplate},
		{JSON, jsonTemplate},
	} {
		t.Run(string(tc.format), func(t *testing.T) {
			tmpl, err := Parse([]byte(tc.data), tc.format)
			require.NoError(t, err)
			require.Len(t, tmpl, 2)

			assert.Equal(t, "editMenu", tmpl[0].Role)
			opts := tmpl[1]
			assert.Equal(t, "Options", opts.Label)
			require.Len(t, opts.Submenu, 3)

			wrap := opts.Submenu[0]
			assert.Equal(t, "checkbox", wrap.Type)
			assert.True(t, wrap.Checked)
			assert.Equal(t, "CmdOrCtrl+Shift+W", wrap.Accelerator)
			assert.Nil(t, wrap.Enabled)
			assert.Empty(t, wrap.Extra)

			light := opts.Submenu[2]
			require.NotNil(t, light.Enabled)
			assert.False(t, *light.Enabled)
			assert.Equal(t, "foo", light.Extra["customProp"])
		})
	}
}

func TestParse_CompilesWithPassThroughProps(t *testing.T) {
	tmpl, err := Parse([]byte(yamlTemplate), YAML)
	require.NoError(t, err)

	c := menu.NewCompiler(roles.New(platform.Static{OS: platform.Linux, Name: "Demo"}))
	m, err := c.Compile(tmpl)
	require.NoError(t, err)

	light := m.ItemAt(1).Submenu().ItemAt(2)
	v, ok := light.Prop("customProp")
	require.True(t, ok)
	require.Equal(t, "foo", v)
	require.False(t, light.Enabled())
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("other: 1\n"), YAML)
	require.ErrorIs(t, err, ErrNoMenu)

	_, err = Parse([]byte("menu: [\n"), YAML)
	require.ErrorContains(t, err, "parsing yaml template")

	_, err = Parse([]byte(`{"menu": "nope"}`), JSON)
	require.ErrorContains(t, err, "decoding menu")

	_, err = Parse([]byte("menu: []"), Format("ini"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"menu.yaml": YAML,
		"menu.YML":  YAML,
		"a/b.toml":  TOML,
		"x.json":    JSON,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		require.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("menu.ini")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlTemplate), 0o600))

	tmpl, err := Load(path)
	require.NoError(t, err)
	require.Len(t, tmpl, 2)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorContains(t, err, "reading template")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = Load(bad)
	require.ErrorContains(t, err, bad)
}

func TestDefault_CompilesOnEveryPlatform(t *testing.T) {
	tmpl := Default()
	require.NotEmpty(t, tmpl)

	for _, p := range platform.All {
		c := menu.NewCompiler(roles.New(platform.Static{OS: p, Name: "Demo"}))
		m, err := c.Compile(tmpl)
		require.NoError(t, err, p)
		require.NoError(t, m.WillShow(), p)
		require.NotNil(t, m.ItemByID("align-left"), p)
	}
}

func TestMarshal_RoundTripsTemplate(t *testing.T) {
	off := false
	in := menu.Template{
		{Label: "File", Submenu: menu.Template{{Role: "quit"}}},
		{Label: "Beta", Type: "checkbox", Enabled: &off, Extra: map[string]any{"color": "teal"}},
	}

	data, err := Marshal(in)
	require.NoError(t, err)

	out, err := Parse(data, YAML)
	require.NoError(t, err)
	require.Equal(t, in[0].Submenu[0].Role, out[0].Submenu[0].Role)
	require.Equal(t, "teal", out[1].Extra["color"])
	require.NotNil(t, out[1].Enabled)
	require.False(t, *out[1].Enabled)
}

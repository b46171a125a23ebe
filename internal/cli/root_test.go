package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "devconnect", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	paths := [][]string{
		{"register"}, {"login"}, {"logout"}, {"whoami"},
		{"profile", "me"}, {"profile", "list"}, {"profile", "show"}, {"profile", "upsert"}, {"profile", "github"},
		{"experience", "add"}, {"experience", "rm"},
		{"education", "add"}, {"education", "rm"},
		{"account", "delete"},
		{"post", "list"}, {"post", "show"}, {"post", "create"}, {"post", "delete"},
		{"post", "like"}, {"post", "unlike"}, {"post", "comment"}, {"post", "uncomment"},
	}
	for _, path := range paths {
		t.Run(strings.Join(path, " "), func(t *testing.T) {
			sub, _, err := cmd.Find(path)
			require.NoError(t, err)
			assert.Equal(t, path[len(path)-1], sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	apiFlag := cmd.PersistentFlags().Lookup("api")
	require.NotNil(t, apiFlag)
	assert.Equal(t, DefaultAPIURL, apiFlag.DefValue)

	timeout := cmd.PersistentFlags().Lookup("timeout")
	require.NotNil(t, timeout)
	assert.Equal(t, "15s", timeout.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"profile", "list", "--format", "xml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestOutputFormatter(t *testing.T) {
	data := map[string]any{"status": "Developer", "skills": []string{"Go"}}
	text := func(w io.Writer) error {
		_, err := w.Write([]byte("plain\n"))
		return err
	}

	var buf bytes.Buffer
	require.NoError(t, (&OutputFormatter{Format: "json", Writer: &buf}).Print(data, text))
	assert.JSONEq(t, `{"status":"Developer","skills":["Go"]}`, buf.String())

	buf.Reset()
	require.NoError(t, (&OutputFormatter{Format: "yaml", Writer: &buf}).Print(data, text))
	assert.Contains(t, buf.String(), "status: Developer\n")
	assert.Contains(t, buf.String(), "- Go\n")

	buf.Reset()
	require.NoError(t, (&OutputFormatter{Format: "text", Writer: &buf}).Print(data, text))
	assert.Equal(t, "plain\n", buf.String())
}

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		input     string
		assumeYes bool
		want      bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", false, false},
		{"", false, false},
		{"", true, true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		c := promptConfirmer{in: strings.NewReader(tt.input), out: &out, assumeYes: tt.assumeYes}
		assert.Equal(t, tt.want, c.Confirm("Sure?"), "input %q", tt.input)
	}
}

package loader

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTOMLLoader_Load(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/config.toml", []byte(`
[editor]
output_path = "notes.txt"

[history]
max_entries = 50
`), 0o644))

	cfg, err := NewTOMLLoaderWithFS(fs, "/cfg/config.toml").Load()
	require.NoError(t, err)

	editor := cfg["editor"].(map[string]any)
	assert.Equal(t, "notes.txt", editor["output_path"])
	history := cfg["history"].(map[string]any)
	assert.EqualValues(t, 50, history["max_entries"])
}

func TestTOMLLoader_MissingFile(t *testing.T) {
	cfg, err := NewTOMLLoaderWithFS(afero.NewMemMapFs(), "/nope.toml").Load()
	require.NoError(t, err)
	assert.Nil(t, cfg)

	cfg, err = NewTOMLLoaderWithFS(afero.NewMemMapFs(), "").Load()
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestTOMLLoader_ParseError(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bad.toml", []byte("[editor\noutput_path = 1\n"), 0o644))

	_, err := NewTOMLLoaderWithFS(fs, "/bad.toml").Load()
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "/bad.toml", perr.Path)
	assert.Contains(t, perr.Error(), "/bad.toml")
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	cfg, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("[ui]\ncolor = false\n"))
	require.NoError(t, err)
	assert.Equal(t, false, cfg["ui"].(map[string]any)["color"])
}

func TestParseErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{"line and column", &ParseError{Path: "a", Line: 2, Column: 3, Message: "m"}, "parse error in a at line 2, column 3: m"},
		{"line only", &ParseError{Path: "a", Line: 2, Message: "m"}, "parse error in a at line 2: m"},
		{"no position", &ParseError{Path: "a", Message: "m"}, "parse error in a: m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"editor": map[string]any{"output_path": "a.txt"},
		"ui":     map[string]any{"color": true, "max_width": int64(10)},
	}
	src := map[string]any{
		"ui":      map[string]any{"color": false},
		"logging": map[string]any{"level": "debug"},
	}

	merged := DeepMerge(dst, src)

	assert.Equal(t, "a.txt", merged["editor"].(map[string]any)["output_path"])
	ui := merged["ui"].(map[string]any)
	assert.Equal(t, false, ui["color"])
	assert.Equal(t, int64(10), ui["max_width"])
	assert.Equal(t, "debug", merged["logging"].(map[string]any)["level"])

	assert.NotNil(t, DeepMerge(nil, nil))
}

func TestEnvLoader(t *testing.T) {
	env := map[string]string{
		"LINESTACK_OUTPUT":      "out.txt",
		"LINESTACK_MAX_HISTORY": "25",
		"LINESTACK_COLOR":       "off",
		"UNRELATED":             "x",
	}
	l := NewEnvLoader(DefaultEnvPrefix)
	l.lookup = func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "out.txt", cfg["editor"].(map[string]any)["output_path"])
	assert.Equal(t, int64(25), cfg["history"].(map[string]any)["max_entries"])
	assert.Equal(t, false, cfg["ui"].(map[string]any)["color"])
	assert.NotContains(t, cfg, "logging")
}

func TestEnvLoader_Empty(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix)
	l.lookup = func(string) (string, bool) { return "", false }

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestEnvLoader_AddMapping(t *testing.T) {
	l := NewEnvLoader("TEST_")
	l.AddMapping("TEST_PROMPT", "ui.prompt", KindString)
	l.lookup = func(k string) (string, bool) {
		if k == "TEST_PROMPT" {
			return "> ", true
		}
		return "", false
	}

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "> ", cfg["ui"].(map[string]any)["prompt"])
}

func TestEnvLoader_StringPathsStayRaw(t *testing.T) {
	for _, raw := range []string{"2024", "no", "on", "-1", ""} {
		t.Run(raw, func(t *testing.T) {
			l := NewEnvLoader(DefaultEnvPrefix)
			l.lookup = func(k string) (string, bool) {
				switch k {
				case "LINESTACK_OUTPUT", "LINESTACK_LOG_FILE":
					return raw, true
				}
				return "", false
			}

			cfg, err := l.Load()
			require.NoError(t, err)
			assert.Equal(t, raw, cfg["editor"].(map[string]any)["output_path"])
			assert.Equal(t, raw, cfg["logging"].(map[string]any)["file"])
		})
	}
}

func TestEnvLoader_BadTypedValue(t *testing.T) {
	tests := []struct {
		env string
		val string
	}{
		{"LINESTACK_MAX_HISTORY", "lots"},
		{"LINESTACK_MAX_WIDTH", "1.5"},
		{"LINESTACK_COLOR", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			l := NewEnvLoader(DefaultEnvPrefix)
			l.lookup = func(k string) (string, bool) {
				if k == tt.env {
					return tt.val, true
				}
				return "", false
			}

			_, err := l.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.env)
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in      string
		kind    ValueKind
		want    any
		wantErr bool
	}{
		{"", KindString, "", false},
		{"42", KindString, "42", false},
		{"true", KindBool, true, false},
		{"YES", KindBool, true, false},
		{"off", KindBool, false, false},
		{"0", KindBool, false, false},
		{"sure", KindBool, nil, true},
		{"1", KindInt, int64(1), false},
		{" -4 ", KindInt, int64(-4), false},
		{"four", KindInt, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseValue(tt.in, tt.kind)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetByPath(t *testing.T) {
	m := map[string]any{}
	SetByPath(m, "a.b.c", 1)
	SetByPath(m, "a.d", 2)
	SetByPath(m, "top", 3)

	a := m["a"].(map[string]any)
	assert.Equal(t, 1, a["b"].(map[string]any)["c"])
	assert.Equal(t, 2, a["d"])
	assert.Equal(t, 3, m["top"])
}

package plist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const themeSample = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>name</key>
	<string>Night Owl</string>
	<key>settings</key>
	<array>
		<dict>
			<key>settings</key>
			<dict>
				<key>background</key>
				<string>#011627</string>
			</dict>
		</dict>
		<dict>
			<key>name</key>
			<string>Comment</string>
			<key>scope</key>
			<string>comment</string>
		</dict>
	</array>
	<key>semanticClass</key>
	<string>theme.dark.night_owl</string>
</dict>
</plist>`

func TestDecode_Theme(t *testing.T) {
	v, err := Decode(strings.NewReader(themeSample))
	require.NoError(t, err)

	dict, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Night Owl", dict["name"])

	settings, ok := dict["settings"].([]any)
	require.True(t, ok)
	require.Len(t, settings, 2)

	first := settings[0].(map[string]any)
	inner := first["settings"].(map[string]any)
	assert.Equal(t, "#011627", inner["background"])

	second := settings[1].(map[string]any)
	assert.Equal(t, "comment", second["scope"])
}

func TestDecode_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"string", "<plist><string>hi</string></plist>", "hi"},
		{"empty string", "<plist><string/></plist>", ""},
		{"integer", "<plist><integer> 42 </integer></plist>", int64(42)},
		{"negative integer", "<plist><integer>-7</integer></plist>", int64(-7)},
		{"real", "<plist><real>1.5</real></plist>", 1.5},
		{"true", "<plist><true/></plist>", true},
		{"false", "<plist><false/></plist>", false},
		{"date", "<plist><date>2024-01-02T03:04:05Z</date></plist>", "2024-01-02T03:04:05Z"},
		{"data", "<plist><data>\n\tAAEC\n\tAwQ=\n</data></plist>", "AAECAwQ="},
		{"bare value", "<array><string>a</string></array>", []any{"a"}},
		{"empty dict", "<plist><dict/></plist>", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"empty document", "", "plist"},
		{"bad integer", "<plist><integer>x</integer></plist>", "invalid integer"},
		{"bad real", "<plist><real>x</real></plist>", "invalid real"},
		{"unknown element", "<plist><set/></plist>", "unsupported element"},
		{"missing key", "<plist><dict><string>x</string></dict></plist>", "expected <key>"},
		{"dangling key", "<plist><dict><key>a</key></dict></plist>", "has no value"},
		{"two top-level values", "<plist><true/><false/></plist>", "one top-level value"},
		{"nested error names key", "<plist><dict><key>n</key><integer>x</integer></dict></plist>", `key "n"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDecodeDict(t *testing.T) {
	dict, err := DecodeDict(strings.NewReader(themeSample))
	require.NoError(t, err)
	assert.Equal(t, "theme.dark.night_owl", dict["semanticClass"])

	_, err = DecodeDict(strings.NewReader("<plist><array/></plist>"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want dict")
}

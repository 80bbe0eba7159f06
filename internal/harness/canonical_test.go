package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_SortsKeys(t *testing.T) {
	got, err := MarshalCanonical(map[string]any{
		"value":  "5",
		"seq":    int64(1),
		"inputs": []string{"2", "3"},
		"ok":     true,
		"nested": map[string]any{"b": 2, "a": 1},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"inputs":["2","3"],"nested":{"a":1,"b":2},"ok":true,"seq":1,"value":"5"}`, string(got))
}

func TestMarshalCanonical_UTF16KeyOrder(t *testing.T) {
	// U+FB01 sorts before U+1F600 in UTF-8 but after it in UTF-16,
	// where the emoji is a surrogate pair starting 0xD83D.
	got, err := MarshalCanonical(map[string]any{"\U0001F600": 1, "\uFB01": 2})
	require.NoError(t, err)
	assert.Equal(t, "{\"\U0001F600\":1,\"\uFB01\":2}", string(got))
}

func TestMarshalCanonical_Strings(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no html escaping", "<a & b>", `"<a & b>"`},
		{"quote and backslash", `say "hi" \ bye`, `"say \"hi\" \\ bye"`},
		{"control characters", "a\tb\nc\x01", `"a\tb\nc\u0001"`},
		{"nfc", "e\u0301", "\"\u00e9\""},
		{"line separator kept", "a\u2028b", "\"a\u2028b\""},
		{"infinity", "∞", `"∞"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalCanonical(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarshalCanonical_Rejects(t *testing.T) {
	_, err := MarshalCanonical(nil)
	assert.ErrorContains(t, err, "null is forbidden")

	_, err = MarshalCanonical(1.5)
	assert.ErrorContains(t, err, "floats are forbidden")

	_, err = MarshalCanonical(map[string]any{"x": []any{"a", 2.5}})
	assert.ErrorContains(t, err, `value for key "x": array[1]: floats are forbidden`)

	_, err = MarshalCanonical(struct{}{})
	assert.ErrorContains(t, err, "unsupported type")
}

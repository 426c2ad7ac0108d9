package hjson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hjson "github.com/hjson-lang/go-hjson"
)

func TestUnmarshalBracedObject(t *testing.T) {
	v, err := hjson.Unmarshal([]byte(`{a: 1, b: "two"}`))
	require.NoError(t, err)
	require.Equal(t, hjson.TypeMap, v.Type())

	a, ok := v.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), a.Int())

	b, ok := v.Get("b")
	require.True(t, ok)
	assert.Equal(t, "two", b.Str())
}

func TestUnmarshalBracelessObject(t *testing.T) {
	v, err := hjson.Unmarshal([]byte("a: 1\nb: 2\n"))
	require.NoError(t, err)
	require.Equal(t, hjson.TypeMap, v.Type())
	assert.Equal(t, []string{"a", "b"}, v.Keys())
}

func TestUnmarshalArray(t *testing.T) {
	v, err := hjson.Unmarshal([]byte(`[1, 2, 3]`))
	require.NoError(t, err)
	require.Equal(t, hjson.TypeVector, v.Type())
	require.Equal(t, 3, v.Len())
	assert.Equal(t, int64(2), v.At(1).Int())
}

func TestUnmarshalSingleBareScalar(t *testing.T) {
	v, err := hjson.Unmarshal([]byte(`hello world`))
	require.NoError(t, err)
	assert.Equal(t, hjson.TypeString, v.Type())
	assert.Equal(t, "hello world", v.Str())
}

func TestUnmarshalQuotelessTokens(t *testing.T) {
	f := func(input string, wantType hjson.ValueType) {
		t.Run(input, func(t *testing.T) {
			v, err := hjson.Unmarshal([]byte("a: " + input))
			require.NoError(t, err)
			elem, ok := v.Get("a")
			require.True(t, ok)
			assert.Equal(t, wantType, elem.Type())
		})
	}
	f("true", hjson.TypeBool)
	f("false", hjson.TypeBool)
	f("null", hjson.TypeNull)
	f("42", hjson.TypeInt)
	f("-3.14", hjson.TypeDouble)
	f("a plain string", hjson.TypeString)
}

func TestUnmarshalQuotelessStringAbsorbsPunctuation(t *testing.T) {
	v, err := hjson.Unmarshal([]byte("a: this, has: punctuation} inside\nb: 2\n"))
	require.NoError(t, err)
	a, ok := v.Get("a")
	require.True(t, ok)
	assert.Equal(t, "this, has: punctuation} inside", a.Str())
	b, ok := v.Get("b")
	require.True(t, ok)
	assert.Equal(t, int64(2), b.Int())
}

func TestUnmarshalQuotedString(t *testing.T) {
	v, err := hjson.Unmarshal([]byte(`"hello\nworld"`))
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld", v.Str())
}

func TestUnmarshalMultilineString(t *testing.T) {
	input := "  '''\n  first\n  second\n  '''"
	v, err := hjson.Unmarshal([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", v.Str())
}

func TestUnmarshalUnicodeEscape(t *testing.T) {
	v, err := hjson.Unmarshal([]byte("\"\\u00e9\""))
	require.NoError(t, err)
	assert.Equal(t, "é", v.Str())
}

func TestUnmarshalDuplicateKeyLastWins(t *testing.T) {
	v, err := hjson.Unmarshal([]byte(`{a: 1, b: 2, a: 3}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v.Keys())
	a, _ := v.Get("a")
	assert.Equal(t, int64(3), a.Int())
}

func TestUnmarshalComments(t *testing.T) {
	input := "# leading\na: 1 # trailing\n"
	v, err := hjson.Unmarshal([]byte(input), hjson.WithDecoderComments(true))
	require.NoError(t, err)
	a, ok := v.Get("a")
	require.True(t, ok)
	assert.Contains(t, v.Before(), "leading")
	assert.Contains(t, a.After(), "trailing")
}

func TestUnmarshalCommentsOffByDefault(t *testing.T) {
	input := "# leading\na: 1\n"
	v, err := hjson.Unmarshal([]byte(input))
	require.NoError(t, err)
	a, ok := v.Get("a")
	require.True(t, ok)
	assert.Empty(t, a.Before())
}

func TestUnmarshalEmptyObjectAndArray(t *testing.T) {
	v, err := hjson.Unmarshal([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, 0, v.Len())

	v, err = hjson.Unmarshal([]byte(`[]`))
	require.NoError(t, err)
	assert.Equal(t, 0, v.Len())
}

func TestUnmarshalErrors(t *testing.T) {
	f := func(name, input string) {
		t.Run(name, func(t *testing.T) {
			_, err := hjson.Unmarshal([]byte(input))
			require.Error(t, err)
			var syntaxErr *hjson.SyntaxError
			assert.ErrorAs(t, err, &syntaxErr)
		})
	}
	f("empty input", "")
	f("whitespace only", "   \n\t  ")
	f("unterminated object", `{a: 1`)
	f("unterminated array", `[1, 2`)
	f("unterminated string", `"abc`)
	f("missing colon", `{a 1}`)
	f("whitespace in key name", `{a b: 1}`)
}

func TestUnmarshalFromFileMissing(t *testing.T) {
	_, err := hjson.UnmarshalFromFile("/nonexistent/path/does/not/exist.hjson")
	require.Error(t, err)
	var fileErr *hjson.FileError
	assert.ErrorAs(t, err, &fileErr)
}

package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadStripsBOM(t *testing.T) {
	text, err := Read(strings.NewReader("\ufeffHello world"))
	require.NoError(t, err)
	assert.Equal(t, "Hello world", text)
}

func TestReadNormalizesToNFC(t *testing.T) {
	text, err := Read(strings.NewReader("Cafe\u0301"))
	require.NoError(t, err)
	assert.Equal(t, "Café", text)
	assert.Equal(t, 4, len([]rune(text)))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("\ufeffline one\nline two\n"), 0o644))
	text, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", text)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseRef(t *testing.T) {
	cases := []struct {
		in   string
		want Ref
	}{
		{"input.txt", Ref{Kind: KindFile, Value: "input.txt"}},
		{"file:notes/today.txt", Ref{Kind: KindFile, Value: "notes/today.txt"}},
		{"text:Hello: world", Ref{Kind: KindText, Value: "Hello: world"}},
		{"text:", Ref{Kind: KindText}},
		{"env:GREETING", Ref{Kind: KindEnv, Value: "GREETING"}},
		{"weather", Ref{Kind: KindWeather}},
		{"weather:", Ref{Kind: KindWeather}},
		{`C:\notes\input.txt`, Ref{Kind: KindFile, Value: `C:\notes\input.txt`}},
	}
	for _, c := range cases {
		got, err := ParseRef(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
	for _, bad := range []string{"", "  ", "file:", "env:"} {
		_, err := ParseRef(bad)
		assert.Error(t, err, bad)
	}
}

type fakeWeather struct {
	calls int
	data  map[string]any
	err   error
}

func (f *fakeWeather) Fetch(context.Context) (map[string]any, error) {
	f.calls++
	return f.data, f.err
}

func TestResolverWeather(t *testing.T) {
	fw := &fakeWeather{data: map[string]any{"main": map[string]any{"temp": 17.5}}}
	r := &Resolver{Weather: fw}
	ctx := context.Background()

	text, err := r.Resolve(ctx, Ref{Kind: KindWeather}, "")
	require.NoError(t, err)
	assert.Equal(t, "18°", text)

	text, err = r.Resolve(ctx, Ref{Kind: KindWeather}, "${main.temp:%.1f} °C")
	require.NoError(t, err)
	assert.Equal(t, "17.5 °C", text)
	assert.Equal(t, 1, fw.calls, "weather data should be fetched once")
}

func TestResolverWeatherErrors(t *testing.T) {
	_, err := (&Resolver{}).Resolve(context.Background(), Ref{Kind: KindWeather}, "")
	assert.Error(t, err)

	boom := errors.New("boom")
	_, err = (&Resolver{Weather: &fakeWeather{err: boom}}).Resolve(context.Background(), Ref{Kind: KindWeather}, "")
	assert.ErrorIs(t, err, boom)
}

func TestResolverTextAndEnv(t *testing.T) {
	r := &Resolver{Getenv: func(k string) string {
		if k == "GREETING" {
			return "hi"
		}
		return ""
	}}
	ctx := context.Background()

	text, err := r.Resolve(ctx, Ref{Kind: KindText, Value: "plain"}, "")
	require.NoError(t, err)
	assert.Equal(t, "plain", text)

	text, err = r.Resolve(ctx, Ref{Kind: KindEnv, Value: "GREETING"}, "<${value}>")
	require.NoError(t, err)
	assert.Equal(t, "<hi>", text)

	text, err = r.Resolve(ctx, Ref{Kind: KindEnv, Value: "UNSET"}, "")
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestResolverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "body.txt")
	require.NoError(t, os.WriteFile(path, []byte("body text"), 0o644))
	text, err := (&Resolver{}).Resolve(context.Background(), Ref{Kind: KindFile, Value: path}, "")
	require.NoError(t, err)
	assert.Equal(t, "body text", text)
}

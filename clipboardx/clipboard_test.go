package clipboardx

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	text string
	err  error
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Write(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func (f *fakeBackend) Read() (string, error) { return f.text, f.err }

func TestRegisterWithoutBackends(t *testing.T) {
	c := NewWithBackends()
	require.False(t, c.Write("hello"))
	require.Equal(t, "hello", c.Read())
	require.Equal(t, "hello", c.Register())
}

func TestFirstWorkingBackendWins(t *testing.T) {
	broken := &fakeBackend{err: errors.New("no display")}
	good := &fakeBackend{}
	c := NewWithBackends(broken, good)

	require.True(t, c.Write("x"))
	require.Equal(t, "x", good.text)

	good.text = "from system"
	require.Equal(t, "from system", c.Read())
}

func TestEmptyBackendFallsBackToRegister(t *testing.T) {
	c := NewWithBackends(&OSC52{W: &bytes.Buffer{}})
	c.Write("kept")
	require.Equal(t, "kept", c.Read())
}

func TestOSC52Sequence(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, OSC52{W: &out}.Write("hi"))
	require.Equal(t, "\x1b]52;c;aGk=\x07", out.String())
	require.Error(t, OSC52{W: &out}.Write(""))
}

// Package clipboardx moves text between the editor and the system
// clipboard. An in-process register always holds the last copied text, so
// copy and paste keep working on machines with no clipboard at all.
package clipboardx

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"

	"tedit/log"
)

const helperTimeout = 2 * time.Second

var errUnavailable = errors.New("clipboard unavailable")

// Backend is one way of reaching a system clipboard.
type Backend interface {
	Name() string
	Write(text string) error
	Read() (string, error)
}

type Clipboard struct {
	mu       sync.Mutex
	backends []Backend
	register string
}

// New returns a clipboard using the native clipboard library, the usual
// command-line helpers and, when stdout is a terminal, OSC 52.
func New() *Clipboard {
	backends := []Backend{native{}}
	for _, h := range helpers {
		if _, err := exec.LookPath(h.copy[0]); err == nil {
			backends = append(backends, h)
		}
	}
	if fi, err := os.Stdout.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		backends = append(backends, OSC52{W: os.Stdout})
	}
	return NewWithBackends(backends...)
}

func NewWithBackends(backends ...Backend) *Clipboard {
	return &Clipboard{backends: backends}
}

// Write stores text in the register and offers it to every backend. It
// reports whether any backend accepted it.
func (c *Clipboard) Write(text string) bool {
	c.mu.Lock()
	c.register = text
	backends := c.backends
	c.mu.Unlock()

	ok := false
	for _, b := range backends {
		if err := b.Write(text); err != nil {
			log.Debug(log.CatUI, "clipboard write failed", "backend", b.Name(), "error", err)
			continue
		}
		ok = true
	}
	return ok
}

// Read returns the first non-empty text a backend yields, or the register.
func (c *Clipboard) Read() string {
	c.mu.Lock()
	backends := c.backends
	register := c.register
	c.mu.Unlock()

	for _, b := range backends {
		text, err := b.Read()
		if err == nil && text != "" {
			return text
		}
	}
	return register
}

// Register returns the text last written through this clipboard.
func (c *Clipboard) Register() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.register
}

type native struct{}

func (native) Name() string { return "native" }

func (native) Write(text string) error {
	if clipboard.Unsupported {
		return errUnavailable
	}
	return clipboard.WriteAll(text)
}

func (native) Read() (string, error) {
	if clipboard.Unsupported {
		return "", errUnavailable
	}
	return clipboard.ReadAll()
}

// helper shells out to a clipboard program.
type helper struct {
	copy  []string
	paste []string
}

var helpers = []helper{
	{copy: []string{"wl-copy"}, paste: []string{"wl-paste", "--no-newline"}},
	{copy: []string{"xclip", "-selection", "clipboard"}, paste: []string{"xclip", "-o", "-selection", "clipboard"}},
	{copy: []string{"xsel", "--clipboard", "--input"}, paste: []string{"xsel", "--clipboard", "--output"}},
	{copy: []string{"pbcopy"}, paste: []string{"pbpaste"}},
	{copy: []string{"clip.exe"}, paste: []string{"powershell.exe", "-NoProfile", "-Command", "Get-Clipboard"}},
}

func (h helper) Name() string { return h.copy[0] }

func (h helper) Write(text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), helperTimeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, h.copy[0], h.copy[1:]...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

func (h helper) Read() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), helperTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, h.paste[0], h.paste[1:]...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// OSC52 asks the terminal to set its clipboard. It cannot read.
type OSC52 struct {
	W io.Writer
}

func (OSC52) Name() string { return "osc52" }

func (o OSC52) Write(text string) error {
	if text == "" {
		return errUnavailable
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := fmt.Fprintf(o.W, "\x1b]52;c;%s\x07", encoded)
	return err
}

func (OSC52) Read() (string, error) { return "", errUnavailable }

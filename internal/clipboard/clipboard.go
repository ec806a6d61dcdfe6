// Package clipboard moves rich text in and out of the system clipboard.
//
// HTML goes through the platform's own tooling (osascript, PowerShell,
// xclip or wl-clipboard) since no portable library writes the text/html
// flavour. Plain text goes through github.com/atotto/clipboard.
package clipboard

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrUnsupportedPlatform is returned on operating systems without an HTML
// clipboard backend.
var ErrUnsupportedPlatform = errors.New("rich clipboard is not supported on this platform")

// MissingToolError reports a required system utility that is not installed
type MissingToolError struct {
	Tool string
	Hint string
}

func (e *MissingToolError) Error() string {
	return fmt.Sprintf("%s not found in PATH: %s", e.Tool, e.Hint)
}

// Unwrap lets callers match exec.ErrNotFound
func (e *MissingToolError) Unwrap() error {
	return exec.ErrNotFound
}

// Runner executes a command, feeding stdin when non-nil, and returns its
// standard output.
type Runner func(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error)

// TextBackend reads and writes plain text
type TextBackend interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}

type atottoBackend struct{}

func (atottoBackend) WriteAll(text string) error { return clipboard.WriteAll(text) }
func (atottoBackend) ReadAll() (string, error)   { return clipboard.ReadAll() }

// Clipboard is the system clipboard. The zero value is not usable; call New.
type Clipboard struct {
	GOOS     string
	Run      Runner
	LookPath func(file string) (string, error)
	Getenv   func(key string) string
	TempDir  string
	Text     TextBackend
}

// New returns a clipboard bound to the current platform
func New() *Clipboard {
	return &Clipboard{
		GOOS:     runtime.GOOS,
		Run:      execRunner,
		LookPath: exec.LookPath,
		Getenv:   os.Getenv,
		TempDir:  os.TempDir(),
		Text:     atottoBackend{},
	}
}

func execRunner(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// WriteHTML places html on the clipboard as text/html. plain is offered
// alongside it where the platform tooling can carry two flavours.
func (c *Clipboard) WriteHTML(ctx context.Context, html, plain string) error {
	switch c.GOOS {
	case "darwin":
		return c.writeDarwin(ctx, html, plain)
	case "windows":
		return c.writeWindows(ctx, html, plain)
	case "linux", "freebsd", "openbsd", "netbsd":
		return c.writeUnix(ctx, html)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedPlatform, c.GOOS)
	}
}

// ReadHTML returns the text/html flavour of the clipboard
func (c *Clipboard) ReadHTML(ctx context.Context) (string, error) {
	switch c.GOOS {
	case "darwin":
		out, err := c.Run(ctx, nil, "osascript", "-e", "the clipboard as «class HTML»")
		if err != nil {
			return "", fmt.Errorf("read html clipboard: %w", err)
		}
		return decodeAppleScriptData(string(out))
	case "windows":
		out, err := c.Run(ctx, nil, "powershell", "-NoProfile", "-Command", "Get-Clipboard -TextFormatType Html")
		if err != nil {
			return "", fmt.Errorf("read html clipboard: %w", err)
		}
		return stripCFHTMLHeader(string(out)), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		name, args, err := c.unixReader()
		if err != nil {
			return "", err
		}
		out, err := c.Run(ctx, nil, name, args...)
		if err != nil {
			return "", fmt.Errorf("read html clipboard: %w", err)
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, c.GOOS)
	}
}

// WriteText places plain text on the clipboard
func (c *Clipboard) WriteText(text string) error {
	if err := c.Text.WriteAll(text); err != nil {
		return fmt.Errorf("write text clipboard: %w", err)
	}
	return nil
}

// ReadText returns the plain text on the clipboard
func (c *Clipboard) ReadText() (string, error) {
	s, err := c.Text.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read text clipboard: %w", err)
	}
	return s, nil
}

func (c *Clipboard) writeDarwin(ctx context.Context, html, plain string) error {
	htmlFile, cleanup, err := c.tempFile("lark-*.html", html)
	if err != nil {
		return err
	}
	defer cleanup()

	script := fmt.Sprintf(`set the clipboard to (read (POSIX file %q) as «class HTML»)`, htmlFile)
	if plain != "" {
		textFile, cleanupText, err := c.tempFile("lark-*.txt", plain)
		if err != nil {
			return err
		}
		defer cleanupText()
		script = fmt.Sprintf(`set the clipboard to {«class HTML»:(read (POSIX file %q) as «class HTML»), string:(read (POSIX file %q) as «class utf8»)}`, htmlFile, textFile)
	}

	if _, err := c.Run(ctx, nil, "osascript", "-e", script); err != nil {
		return fmt.Errorf("write html clipboard: %w", err)
	}
	return nil
}

func (c *Clipboard) writeWindows(ctx context.Context, html, plain string) error {
	htmlFile, cleanup, err := c.tempFile("lark-*.html", html)
	if err != nil {
		return err
	}
	defer cleanup()

	lines := []string{
		"Add-Type -AssemblyName System.Windows.Forms",
		fmt.Sprintf("$html = Get-Content -Path '%s' -Raw -Encoding UTF8", psQuote(htmlFile)),
		"$data = New-Object System.Windows.Forms.DataObject",
		"$data.SetData([System.Windows.Forms.DataFormats]::Html, $html)",
	}
	if plain != "" {
		textFile, cleanupText, err := c.tempFile("lark-*.txt", plain)
		if err != nil {
			return err
		}
		defer cleanupText()
		lines = append(lines,
			fmt.Sprintf("$text = Get-Content -Path '%s' -Raw -Encoding UTF8", psQuote(textFile)),
			"$data.SetData([System.Windows.Forms.DataFormats]::UnicodeText, $text)")
	}
	lines = append(lines, "[System.Windows.Forms.Clipboard]::SetDataObject($data, $true)")

	if _, err := c.Run(ctx, nil, "powershell", "-NoProfile", "-STA", "-Command", strings.Join(lines, "; ")); err != nil {
		return fmt.Errorf("write html clipboard: %w", err)
	}
	return nil
}

func (c *Clipboard) writeUnix(ctx context.Context, html string) error {
	name, args, err := c.unixWriter()
	if err != nil {
		return err
	}
	if _, err := c.Run(ctx, strings.NewReader(html), name, args...); err != nil {
		return fmt.Errorf("write html clipboard: %w", err)
	}
	return nil
}

func (c *Clipboard) wayland() bool {
	return c.Getenv != nil && c.Getenv("WAYLAND_DISPLAY") != ""
}

func (c *Clipboard) unixWriter() (string, []string, error) {
	if c.wayland() {
		if _, err := c.LookPath("wl-copy"); err == nil {
			return "wl-copy", []string{"--type", "text/html"}, nil
		}
	}
	if _, err := c.LookPath("xclip"); err == nil {
		return "xclip", []string{"-selection", "clipboard", "-t", "text/html", "-i"}, nil
	}
	return "", nil, c.missingTool()
}

func (c *Clipboard) unixReader() (string, []string, error) {
	if c.wayland() {
		if _, err := c.LookPath("wl-paste"); err == nil {
			return "wl-paste", []string{"--no-newline", "--type", "text/html"}, nil
		}
	}
	if _, err := c.LookPath("xclip"); err == nil {
		return "xclip", []string{"-selection", "clipboard", "-o", "-t", "text/html"}, nil
	}
	return "", nil, c.missingTool()
}

func (c *Clipboard) missingTool() error {
	if c.wayland() {
		return &MissingToolError{Tool: "wl-clipboard", Hint: "install it with: sudo apt-get install wl-clipboard"}
	}
	return &MissingToolError{Tool: "xclip", Hint: "install it with: sudo apt-get install xclip"}
}

// tempFile writes content to a new file under TempDir and returns a func
// removing it.
func (c *Clipboard) tempFile(pattern, content string) (string, func(), error) {
	f, err := os.CreateTemp(c.TempDir, pattern)
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	name := f.Name()
	cleanup := func() { os.Remove(name) }

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}
	return filepath.Clean(name), cleanup, nil
}

func psQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// decodeAppleScriptData turns osascript's «data HTML3C6D...» into bytes
func decodeAppleScriptData(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "«data HTML") || !strings.HasSuffix(s, "»") {
		return "", fmt.Errorf("unexpected osascript output %q", truncate(s, 40))
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(s, "«data HTML"), "»")
	b, err := hex.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("decode osascript data: %w", err)
	}
	return string(b), nil
}

// stripCFHTMLHeader drops the Version/StartHTML preamble Windows puts in
// front of the markup.
func stripCFHTMLHeader(s string) string {
	if i := strings.Index(s, "<"); i >= 0 {
		return strings.TrimSpace(s[i:])
	}
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

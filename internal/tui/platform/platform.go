// Package platform opens item links and copies them to the clipboard
// using the host's own tools.
package platform

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

var ErrNoClipboard = errors.New("no clipboard command available")

func ValidateLink(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("item has no link")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid URL format")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme: %s", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid URL host")
	}
	return trimmed, nil
}

func OpenInBrowser(link string) error {
	valid, err := ValidateLink(link)
	if err != nil {
		return err
	}
	name, args := browserCommand(runtime.GOOS, valid)
	if err := exec.Command(name, args...).Run(); err != nil {
		return fmt.Errorf("open %s: %w", valid, err)
	}
	return nil
}

func CopyToClipboard(text string) error {
	command, err := selectClipboardCommand(exec.LookPath)
	if err != nil {
		return err
	}
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Stdin = bytes.NewBufferString(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("copy with %s: %w", command[0], err)
	}
	return nil
}

func browserCommand(goos, link string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{link}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", link}
	default:
		return "xdg-open", []string{link}
	}
}

func selectClipboardCommand(lookPath func(string) (string, error)) ([]string, error) {
	commands := [][]string{
		{"pbcopy"},
		{"xclip", "-selection", "clipboard"},
		{"wl-copy"},
		{"xsel", "--clipboard", "--input"},
	}
	for _, c := range commands {
		if _, err := lookPath(c[0]); err == nil {
			return c, nil
		}
	}
	return nil, ErrNoClipboard
}

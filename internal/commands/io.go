package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gerunddev/larkbridge/internal/htmldoc"
	"github.com/gerunddev/larkbridge/internal/lark"
)

// readInput reads the file named by args[0], or stdin when there is no
// argument or it is "-".
func readInput(cmd *cobra.Command, args []string) (string, []byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
		return "stdin", data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %q: %w", args[0], err)
	}
	return args[0], data, nil
}

// writeOutput writes data to path, or to stdout when path is empty
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}

// markdownExts are the extensions picked up when a directory is scanned
var markdownExts = map[string]bool{".md": true, ".markdown": true}

// expandArgs replaces every directory argument with the Markdown files
// found beneath it, in lexical order.
func expandArgs(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			out = append(out, arg)
			continue
		}
		files, err := scanDirectory(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %q: %w", arg, err)
		}
		out = append(out, files...)
	}
	return out, nil
}

// scanDirectory lists Markdown files under dir, skipping hidden directories
func scanDirectory(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if markdownExts[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// marshalRecords encodes data as compact JSON without HTML escaping
func marshalRecords(data *lark.ClipboardData) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}
	return buf.Bytes(), nil
}

// parseRecords accepts either the record JSON or an HTML fragment carrying
// it in data-lark-record-data.
func parseRecords(src []byte) (*lark.ClipboardData, error) {
	trimmed := strings.TrimSpace(string(src))
	if strings.HasPrefix(trimmed, "<") {
		return htmldoc.Extract(trimmed)
	}

	var data lark.ClipboardData
	if err := json.Unmarshal([]byte(trimmed), &data); err != nil {
		return nil, fmt.Errorf("failed to parse records: %w", err)
	}
	return &data, nil
}

package export

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// DefaultFilenamePattern names single exports and archive entries.
const DefaultFilenamePattern = "{{.Title}}_Version_{{.Version}}"

// AnswerKeySuffix is appended before the extension for instructor keys.
const AnswerKeySuffix = "_Answer_Key"

type filenameData struct {
	Title     string
	Version   string
	Format    string
	Timestamp string
	Date      string
}

func renderFilename(pattern string, c *Content, version string, format Format, now time.Time) (string, error) {
	if pattern == "" {
		pattern = DefaultFilenamePattern
	}

	data := filenameData{
		Title:     sanitizeFilename(c.Title),
		Version:   version,
		Format:    string(format),
		Timestamp: now.UTC().Format("20060102T150405Z"),
		Date:      now.UTC().Format("20060102"),
	}

	tmpl, err := template.New("filename").Parse(pattern)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	result := strings.TrimSpace(buf.String())
	if result == "" {
		return "", fmt.Errorf("empty filename")
	}

	ext := ExtensionForFormat(format)
	if !strings.HasSuffix(strings.ToLower(result), "."+ext) {
		result = result + "." + ext
	}
	return result, nil
}

// answerKeyFilename derives the instructor key name from an entry name.
func answerKeyFilename(name string) string {
	ext := ""
	if i := strings.LastIndex(name, "."); i >= 0 {
		ext = name[i:]
		name = name[:i]
	}
	return name + AnswerKeySuffix + ext
}

// sanitizeFilename replaces characters that are unsafe in archive entries or
// host filesystems.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "export"
	}
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r == ' ':
			sb.WriteRune('_')
		case strings.ContainsRune(`/\:*?"<>|`, r) || r < 0x20:
			sb.WriteRune('-')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

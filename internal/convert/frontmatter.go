package convert

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// FrontMatter holds the YAML header fields the converter understands
type FrontMatter struct {
	Title string `yaml:"title"`
}

// splitFrontMatter separates a leading --- delimited YAML block from the
// body. Input whose header does not parse as YAML is left untouched.
func splitFrontMatter(markdown string) (FrontMatter, string, bool) {
	var fm FrontMatter

	content := strings.TrimPrefix(markdown, "\ufeff")
	if !strings.HasPrefix(content, "---\n") && !strings.HasPrefix(content, "---\r\n") {
		return fm, markdown, false
	}

	lines := strings.SplitAfter(content, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r\n") != "---" {
			continue
		}
		var doc yaml.Node
		if err := yaml.Unmarshal([]byte(strings.Join(lines[1:i], "")), &doc); err != nil {
			return fm, markdown, false
		}
		// a thematic break pair around prose is not front matter
		if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
			return fm, markdown, false
		}
		if err := doc.Decode(&fm); err != nil {
			return FrontMatter{}, markdown, false
		}
		return fm, strings.Join(lines[i+1:], ""), true
	}
	return fm, markdown, false
}

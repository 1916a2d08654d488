// Package deck loads markdown slide decks.
//
// A deck is a markdown file whose slides are separated by lines holding
// only "---". An optional YAML front matter block at the top of the file
// sets the deck title and carousel settings.
package deck

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/tumble/pkg/config"
)

// ErrEmptyDeck is returned when a source holds no slides.
var ErrEmptyDeck = errors.New("deck has no slides")

const separator = "---"

// Slide is one page of a deck.
type Slide struct {
	Title  string // First heading, or empty
	Body   string // Raw markdown
	Source string // File the slide came from
}

// Deck is an ordered list of slides.
type Deck struct {
	Title    string
	Path     string
	Settings config.Settings
	Slides   []Slide
}

type frontMatter struct {
	Title           string `yaml:"title"`
	config.Settings `yaml:",inline"`
}

// Parse splits src into slides.
func Parse(src []byte, source string) (*Deck, error) {
	d := &Deck{Path: source}

	body, fm, err := splitFrontMatter(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if fm != nil {
		var meta frontMatter
		if err := yaml.Unmarshal(fm, &meta); err != nil {
			return nil, fmt.Errorf("%s: failed to parse front matter: %w", source, err)
		}
		if err := meta.Settings.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		d.Title = meta.Title
		d.Settings = meta.Settings
	}

	for _, chunk := range splitSlides(body) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		d.Slides = append(d.Slides, Slide{
			Title:  headingOf(chunk),
			Body:   strings.Trim(chunk, "\n"),
			Source: source,
		})
	}
	if len(d.Slides) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyDeck)
	}
	if d.Title == "" {
		d.Title = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}
	return d, nil
}

// LoadFile reads and parses the deck at path.
func LoadFile(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck %s: %w", path, err)
	}
	return Parse(data, path)
}

// splitFrontMatter peels a leading "---" delimited YAML block off src. The
// block only counts as front matter when it holds a non-empty mapping;
// otherwise the leading "---" is an ordinary slide separator.
func splitFrontMatter(src []byte) (body []byte, fm []byte, err error) {
	trimmed := bytes.TrimPrefix(src, []byte("\ufeff"))
	if !bytes.HasPrefix(trimmed, []byte(separator+"\n")) && !bytes.HasPrefix(trimmed, []byte(separator+"\r\n")) {
		return trimmed, nil, nil
	}
	rest := trimmed[bytes.IndexByte(trimmed, '\n')+1:]
	lines := bytes.SplitAfter(rest, []byte("\n"))
	offset := 0
	for _, line := range lines {
		if strings.TrimSpace(string(line)) == separator {
			if !isMapping(rest[:offset]) {
				return trimmed, nil, nil
			}
			return rest[offset+len(line):], rest[:offset], nil
		}
		offset += len(line)
	}
	if isMapping(rest) {
		return nil, nil, errors.New("unterminated front matter")
	}
	return trimmed, nil, nil
}

func isMapping(block []byte) bool {
	var doc yaml.Node
	if err := yaml.Unmarshal(block, &doc); err != nil || len(doc.Content) == 0 {
		return false
	}
	root := doc.Content[0]
	return root.Kind == yaml.MappingNode && len(root.Content) > 0
}

// splitSlides cuts on separator lines outside fenced code blocks.
func splitSlides(body []byte) []string {
	var (
		slides  []string
		current strings.Builder
		fenced  bool
	)
	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			fenced = !fenced
		}
		if !fenced && trimmed == separator {
			slides = append(slides, current.String())
			current.Reset()
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	return append(slides, current.String())
}

func headingOf(chunk string) string {
	for _, line := range strings.Split(chunk, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}
	return ""
}

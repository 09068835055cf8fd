// Package blog loads markdown posts with YAML frontmatter.
package blog

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const wordsPerMinute = 200

var ErrNotFound = errors.New("post not found")

type Post struct {
	ID       string   `yaml:"-" json:"id"`
	Title    string   `yaml:"title" json:"title"`
	Excerpt  string   `yaml:"excerpt" json:"excerpt"`
	Content  string   `yaml:"-" json:"content"`
	Date     string   `yaml:"date" json:"date"`
	ReadTime string   `yaml:"readTime" json:"readTime"`
	Tags     []string `yaml:"tags" json:"tags"`
	Featured bool     `yaml:"featured" json:"featured"`
}

// HasTag matches case-insensitively.
func (p Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

var fence = []byte("---")

// Parse splits a "---" delimited YAML header from the markdown body. Posts
// without a header get the id as title.
func Parse(id string, data []byte) (Post, error) {
	post := Post{ID: id}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	body := data
	if bytes.HasPrefix(data, fence) {
		rest := data[len(fence):]
		end := bytes.Index(rest, append([]byte("\n"), fence...))
		if end < 0 {
			return Post{}, fmt.Errorf("post %s: unterminated frontmatter", id)
		}
		if err := yaml.Unmarshal(rest[:end], &post); err != nil {
			return Post{}, fmt.Errorf("post %s: frontmatter: %w", id, err)
		}
		body = rest[end+1+len(fence):]
	}

	post.ID = id
	post.Content = strings.TrimSpace(string(body))
	if post.Title == "" {
		post.Title = id
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if post.ReadTime == "" {
		post.ReadTime = ReadTime(post.Content)
	}
	if post.Excerpt == "" {
		post.Excerpt = excerpt(post.Content)
	}
	return post, nil
}

// ReadTime estimates reading time at 200 words per minute, at least a minute.
func ReadTime(markdown string) string {
	words := len(strings.Fields(markdown))
	minutes := int(math.Max(1, math.Ceil(float64(words)/wordsPerMinute)))
	return fmt.Sprintf("%d min read", minutes)
}

func excerpt(markdown string) string {
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "```") {
			continue
		}
		if len(line) > 160 {
			cut := strings.LastIndex(line[:160], " ")
			if cut <= 0 {
				cut = 160
				for cut > 0 && !utf8.RuneStart(line[cut]) {
					cut--
				}
			}
			return line[:cut] + "..."
		}
		return line
	}
	return ""
}

// Package showcase lists portfolio projects and filters them by technology.
package showcase

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Zachkp/folio/content"
)

type Project struct {
	ID           int      `yaml:"id" json:"id"`
	Title        string   `yaml:"title" json:"title"`
	Description  string   `yaml:"description" json:"description"`
	Technologies []string `yaml:"technologies" json:"technologies"`
	GithubURL    string   `yaml:"githubUrl" json:"githubUrl,omitempty"`
	LiveURL      string   `yaml:"liveUrl" json:"liveUrl,omitempty"`
	Featured     bool     `yaml:"featured" json:"featured"`
	Image        string   `yaml:"image" json:"image,omitempty"`
}

func (p Project) Uses(tech string) bool {
	for _, t := range p.Technologies {
		if strings.EqualFold(t, tech) {
			return true
		}
	}
	return false
}

// HasLink reports whether u points somewhere; "#" is a placeholder.
func HasLink(u string) bool {
	return u != "" && u != "#"
}

type Catalog struct {
	projects []Project
}

// Load reads a YAML list of projects from name in fsys.
func Load(fsys fs.FS, name string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read showcase: %w", err)
	}
	var doc struct {
		Projects []Project `yaml:"projects"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse showcase: %w", err)
	}
	return New(doc.Projects), nil
}

// New orders projects featured first, then by title.
func New(projects []Project) *Catalog {
	ps := append([]Project(nil), projects...)
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].Featured != ps[j].Featured {
			return ps[i].Featured
		}
		return strings.ToLower(ps[i].Title) < strings.ToLower(ps[j].Title)
	})
	return &Catalog{projects: ps}
}

func (c *Catalog) List() []Project {
	return c.projects
}

func (c *Catalog) Featured() []Project {
	return content.Filter(c.projects, func(p Project) bool { return p.Featured })
}

type Operator string

const (
	OR  Operator = "OR"
	AND Operator = "AND"
)

type Query struct {
	Technologies []string
	Operator     Operator
	Search       string
}

func (q Query) Empty() bool {
	return len(q.Technologies) == 0 && strings.TrimSpace(q.Search) == ""
}

// Filter keeps projects matching the search text (title, case-insensitive)
// and the selected technologies, any of them for OR and all for AND.
func (c *Catalog) Filter(q Query) []Project {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	return content.Filter(c.projects, func(p Project) bool {
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			return false
		}
		if len(q.Technologies) == 0 {
			return true
		}
		if q.Operator == AND {
			for _, t := range q.Technologies {
				if !p.Uses(t) {
					return false
				}
			}
			return true
		}
		for _, t := range q.Technologies {
			if p.Uses(t) {
				return true
			}
		}
		return false
	})
}

// Technologies lists every technology in use, most common first.
func (c *Catalog) Technologies() []string {
	var flat []string
	for _, p := range c.projects {
		flat = append(flat, p.Technologies...)
	}
	groups := content.GroupByKey(flat, func(t string) string { return t })
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Key
	}
	return out
}

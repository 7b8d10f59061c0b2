// Package catalog lists the pharmacy reports the UI and CLI can render.
package catalog

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"gofarma/internal/errors"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Entry is one report of the catalog.
type Entry struct {
	Slug     string            `yaml:"slug"`
	Title    string            `yaml:"title"`
	Group    string            `yaml:"group"`
	Endpoint string            `yaml:"endpoint"`
	Params   map[string]string `yaml:"params"`
}

// Query returns the default parameters merged with overrides. Override keys
// replace defaults; an override with an empty value removes the default.
func (e Entry) Query(overrides url.Values) url.Values {
	q := url.Values{}
	for k, v := range e.Params {
		q.Set(k, v)
	}
	for k, vs := range overrides {
		if len(vs) == 0 || (len(vs) == 1 && vs[0] == "") {
			q.Del(k)
			continue
		}
		q[k] = append([]string(nil), vs...)
	}
	return q
}

type file struct {
	Reports []Entry `yaml:"reports"`
}

// Catalog is an ordered, slug-indexed list of reports.
type Catalog struct {
	entries []Entry
	bySlug  map[string]int
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Open loads the catalog at path, or the embedded one when path is empty.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// LoadFile reads a catalog YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound(fmt.Sprintf("catalog file %s", path))
		}
		return nil, errors.Wrapf(err, "reading catalog %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading catalog %s", path)
	}
	return c, nil
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}
	if len(f.Reports) == 0 {
		return nil, errors.ConfigInvalid("catalog has no reports")
	}

	c := &Catalog{
		entries: make([]Entry, 0, len(f.Reports)),
		bySlug:  make(map[string]int, len(f.Reports)),
	}
	for i, e := range f.Reports {
		e.Slug = strings.TrimSpace(e.Slug)
		if e.Slug == "" {
			return nil, errors.ConfigInvalid(fmt.Sprintf("catalog entry %d has no slug", i))
		}
		if strings.ContainsAny(e.Slug, "/?# ") {
			return nil, errors.ConfigInvalid(fmt.Sprintf("catalog slug %q is not a path segment", e.Slug))
		}
		if _, dup := c.bySlug[e.Slug]; dup {
			return nil, errors.ConfigInvalid(fmt.Sprintf("duplicate catalog slug %q", e.Slug))
		}
		if e.Title == "" {
			e.Title = e.Slug
		}
		if e.Endpoint == "" {
			e.Endpoint = "reportes/" + e.Slug
		}
		c.bySlug[e.Slug] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// Entries returns the reports in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lookup finds a report by slug. Unknown slugs yield a NOT_FOUND error.
func (c *Catalog) Lookup(slug string) (Entry, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Entry{}, errors.NotFound(fmt.Sprintf("report %q", slug))
	}
	return c.entries[i], nil
}

// Groups returns the distinct group names in first-seen order.
func (c *Catalog) Groups() []string {
	var groups []string
	seen := make(map[string]bool)
	for _, e := range c.entries {
		if !seen[e.Group] {
			seen[e.Group] = true
			groups = append(groups, e.Group)
		}
	}
	return groups
}

// ByGroup returns the reports of one group in catalog order.
func (c *Catalog) ByGroup(group string) []Entry {
	var out []Entry
	for _, e := range c.entries {
		if e.Group == group {
			out = append(out, e)
		}
	}
	return out
}

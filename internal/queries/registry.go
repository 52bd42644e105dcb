// Package queries holds the named report queries and runs them against the store.
package queries

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

// Marker starts a query block. The rest of the marker line is the query name
// and the following lines, up to the next marker, are its body.
const Marker = "--@name:"

//go:embed sql
var defaultsFS embed.FS

// QueryNotFoundError is returned when a name has no definition.
type QueryNotFoundError struct {
	Name string
}

func (e *QueryNotFoundError) Error() string {
	return fmt.Sprintf("Query with name '%s' not found", e.Name)
}

// Resolver maps a query name to its SQL text.
type Resolver interface {
	Resolve(name string) (string, error)
}

// Registry is an immutable set of named queries.
type Registry struct {
	queries map[string]string
	order   []string
}

// Parse reads query blocks from r. Text before the first marker is ignored.
// When a name is defined twice the first definition wins.
func Parse(r io.Reader) (*Registry, error) {
	reg := &Registry{queries: map[string]string{}}

	var (
		name string
		body strings.Builder
		open bool
	)
	flush := func() {
		if !open || name == "" {
			return
		}
		if _, exists := reg.queries[name]; !exists {
			reg.queries[name] = strings.TrimSpace(body.String())
			reg.order = append(reg.order, name)
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.Index(line, Marker); idx >= 0 && strings.TrimSpace(line[:idx]) == "" {
			flush()
			name = strings.TrimSpace(line[idx+len(Marker):])
			body.Reset()
			open = true
			continue
		}
		if open {
			body.WriteString(line)
			body.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read queries: %w", err)
	}
	flush()

	return reg, nil
}

// LoadFile parses the query file at path.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open queries file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Default returns the built-in queries for a store dialect.
func Default(dialect string) (*Registry, error) {
	f, err := defaultsFS.Open("sql/" + dialect + ".sql")
	if err != nil {
		return nil, fmt.Errorf("no built-in queries for dialect %q", dialect)
	}
	defer f.Close()
	return Parse(f)
}

func (r *Registry) Resolve(name string) (string, error) {
	query, ok := r.queries[name]
	if !ok {
		return "", &QueryNotFoundError{Name: name}
	}
	return query, nil
}

// Names lists the defined queries in file order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Lazy loads a registry on first use and keeps it for the life of the process.
// An empty Path selects the built-in queries for Dialect.
type Lazy struct {
	Path    string
	Dialect string

	once sync.Once
	reg  *Registry
	err  error
}

func (l *Lazy) Registry() (*Registry, error) {
	l.once.Do(func() {
		if l.Path != "" {
			l.reg, l.err = LoadFile(l.Path)
			return
		}
		l.reg, l.err = Default(l.Dialect)
	})
	return l.reg, l.err
}

func (l *Lazy) Resolve(name string) (string, error) {
	reg, err := l.Registry()
	if err != nil {
		return "", err
	}
	return reg.Resolve(name)
}

// Names lists the defined queries sorted by name.
func (l *Lazy) Names() ([]string, error) {
	reg, err := l.Registry()
	if err != nil {
		return nil, err
	}
	names := reg.Names()
	sort.Strings(names)
	return names, nil
}

package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/docker/docker/pkg/locker"
	"github.com/mgijax/tabletools/errors"
	log "github.com/sirupsen/logrus"
)

// Supported file syntaxes
const (
	FormatTab = "tab"
	FormatSh  = "sh"
	FormatCsh = "csh"
)

// GlobalConfigKey names the parameter holding the path of a lower-precedence config file
const GlobalConfigKey = "GLOBAL_CONFIG"

// maxDepth bounds the nesting of ${NAME} references
const maxDepth = 100

var (
	reFormat  = regexp.MustCompile(`(?i)^#format: *(.*)`)
	reComment = regexp.MustCompile(`^(#.*|[ \t]*)$`)
	reTabbed  = regexp.MustCompile(`^([^\t\n ]*)[\t ]*['"]?([^'"\n]*)['"]?`)
	reShell   = regexp.MustCompile(`^([^\t =]*)[\t ]*=[\t ]*['"]?([^'"\n]*)['"]?`)
	reCshSet  = regexp.MustCompile(`^set[\t ]+([^\t ]*)[\t ]*=[\t ]*['"]?([^'"\n]*)['"]?`)
	reCshEnv  = regexp.MustCompile(`^setenv[\t ]+([^\t\n ]+)[\t ]*['"]?([^'"\n]*)['"]?`)
	reParm    = regexp.MustCompile(`\$\{([^}]+)\}`)
)

func syntax(format string) ([]*regexp.Regexp, error) {
	switch format {
	case FormatTab:
		return []*regexp.Regexp{reTabbed}, nil
	case FormatSh:
		return []*regexp.Regexp{reShell}, nil
	case FormatCsh:
		return []*regexp.Regexp{reCshSet, reCshEnv}, nil
	}
	return nil, errors.UnrecognizedFormatError{Format: format}
}

// Config is a set of configuration parameters
type Config struct {
	path    string
	options map[string]string
}

// New creates an empty Config
func New() *Config {
	return &Config{options: make(map[string]string)}
}

// Parse reads a Config from r. name is used in error messages.
func Parse(r io.Reader, name string) (*Config, error) {
	c := New()
	c.path = name
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	regexes := []*regexp.Regexp{reTabbed}
	first := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if first {
			first = false
			if m := reFormat.FindStringSubmatch(line); m != nil {
				var err error
				if regexes, err = syntax(strings.TrimSpace(m[1])); err != nil {
					return nil, fmt.Errorf("%s: %w", name, err)
				}
				continue
			}
		}
		if reComment.MatchString(line) {
			continue
		}
		for _, re := range regexes {
			if m := re.FindStringSubmatch(line); m != nil {
				if m[1] != "" {
					c.options[m[1]] = m[2]
				}
				break
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// Load reads the Config file at path, merging in its GLOBAL_CONFIG file if that exists
func Load(path string) (*Config, error) {
	return load(path, make(map[string]bool))
}

// load reads a Config and its chain of global configs. seen holds the files already in
// the chain.
func load(path string, seen map[string]bool) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	seen[abs] = true
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := Parse(f, path)
	if err != nil {
		return nil, err
	}
	if err := c.mergeGlobal(seen); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) mergeGlobal(seen map[string]bool) error {
	if !c.Has(GlobalConfigKey) {
		return nil
	}
	global, err := c.Get(GlobalConfigKey)
	if err != nil {
		return err
	}
	if _, err := os.Stat(global); err != nil {
		log.WithFields(log.Fields{"config": c.path, "global": global}).Debug("global config not found")
		return nil
	}
	abs, err := filepath.Abs(global)
	if err != nil {
		return err
	}
	if seen[abs] {
		log.WithFields(log.Fields{"config": c.path, "global": global}).Warn("global config refers back to itself, ignoring")
		return nil
	}
	g, err := load(global, seen)
	if err != nil {
		return err
	}
	c.Merge(g)
	return nil
}

// Find looks for a file called name in start and then in each of its parent directories,
// returning the first path found. An absolute name is only checked for existence.
func Find(name, start string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", err
		}
		return name, nil
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("cannot find %s above %s: %w", name, start, os.ErrNotExist)
		}
		dir = parent
	}
}

var cache = struct {
	locks   *locker.Locker
	mu      sync.Mutex
	configs map[string]*Config
}{locks: locker.New(), configs: make(map[string]*Config)}

// Cached returns the Config at path, loading it on first use. Later calls with the same
// path return the same Config; concurrent first calls load the file once.
func Cached(path string) (*Config, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	cache.locks.Lock(key)
	defer cache.locks.Unlock(key)

	cache.mu.Lock()
	c, ok := cache.configs[key]
	cache.mu.Unlock()
	if ok {
		return c, nil
	}
	if c, err = Load(path); err != nil {
		return nil, err
	}
	cache.mu.Lock()
	cache.configs[key] = c
	cache.mu.Unlock()
	return c, nil
}

// Path returns the file this Config was read from, if any
func (c *Config) Path() string {
	return c.path
}

// Len returns the number of parameters
func (c *Config) Len() int {
	return len(c.options)
}

// Has returns true iff parameter key is defined
func (c *Config) Has(key string) bool {
	_, ok := c.options[key]
	return ok
}

// Set defines parameter key. References in value are resolved when it is read.
func (c *Config) Set(key, value string) {
	c.options[key] = value
}

// Keys returns the parameter names, sorted
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.options))
	for k := range c.options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of parameter key with every ${NAME} reference resolved
func (c *Config) Get(key string) (string, error) {
	return c.resolve(key, maxDepth)
}

// Lookup is Get for optional parameters: ok is false when key is undefined or cannot be
// resolved
func (c *Config) Lookup(key string) (value string, ok bool) {
	v, err := c.Get(key)
	if err != nil {
		return "", false
	}
	return v, true
}

// Unresolved returns the value of parameter key as written in the file
func (c *Config) Unresolved(key string) (string, bool) {
	v, ok := c.options[key]
	return v, ok
}

// Resolved returns every parameter with its references resolved
func (c *Config) Resolved() (map[string]string, error) {
	res := make(map[string]string, len(c.options))
	for k := range c.options {
		v, err := c.Get(k)
		if err != nil {
			return nil, err
		}
		res[k] = v
	}
	return res, nil
}

// CheckKeys returns a MissingKeyError naming every key which is not defined
func (c *Config) CheckKeys(keys ...string) error {
	var missing []string
	for _, k := range keys {
		if !c.Has(k) {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return errors.MissingKeyError{Names: missing}
	}
	return nil
}

// Merge adds the parameters of other which are not already defined here
func (c *Config) Merge(other *Config) {
	for k, v := range other.options {
		if _, ok := c.options[k]; !ok {
			c.options[k] = v
		}
	}
}

// Expand resolves ${NAME} references in s
func (c *Config) Expand(s string) (string, error) {
	return c.expand(s, maxDepth)
}

func (c *Config) resolve(key string, steps int) (string, error) {
	if steps == 0 {
		return "", errors.UnresolvableError{Name: key}
	}
	v, ok := c.options[key]
	if !ok {
		return "", errors.MissingKeyError{Names: []string{key}}
	}
	return c.expand(v, steps)
}

func (c *Config) expand(s string, steps int) (string, error) {
	var sb strings.Builder
	for {
		loc := reParm.FindStringSubmatchIndex(s)
		if loc == nil {
			sb.WriteString(s)
			return sb.String(), nil
		}
		v, err := c.resolve(s[loc[2]:loc[3]], steps-1)
		if err != nil {
			return "", err
		}
		sb.WriteString(s[:loc[0]])
		sb.WriteString(v)
		s = s[loc[1]:]
	}
}

// Write writes the resolved parameters to w in the given syntax, preceded by a "#format:" line
func (c *Config) Write(w io.Writer, format string) error {
	if _, err := syntax(format); err != nil {
		return err
	}
	resolved, err := c.Resolved()
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "#format: %s\n", format)
	for _, k := range c.Keys() {
		v := resolved[k]
		switch format {
		case FormatTab:
			fmt.Fprintf(bw, "%s\t%s\n", k, v)
		case FormatSh:
			fmt.Fprintf(bw, "%s=\"%s\"\nexport %s\n", k, v, k)
		case FormatCsh:
			fmt.Fprintf(bw, "setenv %s \"%s\"\n", k, v)
		}
	}
	return bw.Flush()
}

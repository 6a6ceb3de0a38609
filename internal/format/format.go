// Package format parses textual network definitions into boolnet networks.
// Two grammars are supported: the BND block format and the GraphML node/att
// format. The parser strategy is picked from the file extension, with an
// explicit override for files that do not follow the convention.
package format

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/san-kum/boolsim/internal/boolnet"
)

// Parser turns definition text into a network. Recoverable problems (a
// malformed block, a duplicate node) are surfaced as warnings; an error means
// the text as a whole was unusable.
type Parser interface {
	Name() string
	Parse(text string) (boolnet.Network, []Warning, error)
}

type Warning struct {
	Node    string
	Message string
}

func (w Warning) String() string {
	if w.Node == "" {
		return w.Message
	}
	return w.Node + ": " + w.Message
}

var parsers = map[string]func() Parser{
	"bnd":     func() Parser { return &BNDParser{} },
	"graphml": func() Parser { return &GraphMLParser{} },
}

// Get returns the parser registered under name.
func Get(name string) (Parser, error) {
	fn, ok := parsers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", boolnet.ErrUnknownFormat, name)
	}
	return fn(), nil
}

// ForPath picks a parser from the file extension.
func ForPath(path string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bnd", ".txt":
		return Get("bnd")
	case ".graphml", ".xgmml", ".xml":
		return Get("graphml")
	default:
		return nil, fmt.Errorf("%w: %s", boolnet.ErrUnknownFormat, path)
	}
}

// ParseFile reads and parses a network definition. An empty formatName means
// the format is derived from the extension.
func ParseFile(path, formatName string) (boolnet.Network, []Warning, error) {
	var p Parser
	var err error
	if formatName != "" {
		p, err = Get(formatName)
	} else {
		p, err = ForPath(path)
	}
	if err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	net, warns, err := p.Parse(string(data))
	if err != nil {
		return nil, warns, err
	}
	if len(net) == 0 {
		return nil, warns, fmt.Errorf("%w: %s", boolnet.ErrEmptyNetwork, path)
	}
	return net, warns, nil
}

// Formats lists the registered parser names.
func Formats() []string {
	names := make([]string, 0, len(parsers))
	for name := range parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package format

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/san-kum/boolsim/internal/boolnet"
)

// GraphMLParser reads graph-format definitions: <node> elements identified by
// id (or label) carrying an <att name="MY-RULE" value="..."/> payload. Rules
// use word operators (and/or/not) and are normalized to &,|,! before storage,
// including the no-space "not(" form. Nodes without a MY-RULE att are input
// placeholders.
type GraphMLParser struct{}

const ruleAttName = "MY-RULE"

type graphNode struct {
	ID    string     `xml:"id,attr"`
	Label string     `xml:"label,attr"`
	Atts  []graphAtt `xml:"att"`
}

type graphAtt struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

func (p *GraphMLParser) Name() string { return "graphml" }

func (p *GraphMLParser) Parse(text string) (boolnet.Network, []Warning, error) {
	net := make(boolnet.Network)
	warns := make([]Warning, 0)

	dec := xml.NewDecoder(strings.NewReader(text))
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, warns, fmt.Errorf("graphml: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "node" {
			continue
		}

		var gn graphNode
		if err := dec.DecodeElement(&gn, &start); err != nil {
			warns = append(warns, Warning{Message: "skipping unreadable node element: " + err.Error()})
			continue
		}

		name := gn.ID
		if name == "" {
			name = gn.Label
		}
		if name == "" {
			warns = append(warns, Warning{Message: "skipping node element without id or label"})
			continue
		}
		if net.Has(name) {
			warns = append(warns, Warning{Node: name, Message: "duplicate definition, later one wins"})
		}

		node := &boolnet.Node{Name: name, IsInput: true}
		for _, att := range gn.Atts {
			if att.Name == ruleAttName {
				node.Rule = NormalizeRule(att.Value)
				node.IsInput = false
				break
			}
		}
		net[name] = node
	}

	return net, warns, nil
}

var (
	wordNotParen = regexp.MustCompile(`\bnot\(`)
	wordNot      = regexp.MustCompile(`\bnot\b`)
	wordAnd      = regexp.MustCompile(`\band\b`)
	wordOr       = regexp.MustCompile(`\bor\b`)
)

// NormalizeRule rewrites word operators to their symbolic form. The no-space
// "not(" case must be handled before the bare word, otherwise the rewritten
// text glues "!" onto "(" with the operand lost.
func NormalizeRule(rule string) string {
	rule = wordNotParen.ReplaceAllString(rule, "!(")
	rule = wordNot.ReplaceAllString(rule, "! ")
	rule = wordAnd.ReplaceAllString(rule, "&")
	rule = wordOr.ReplaceAllString(rule, "|")
	return strings.Join(strings.Fields(rule), " ")
}

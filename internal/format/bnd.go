package format

import (
	"regexp"
	"strings"

	"github.com/san-kum/boolsim/internal/boolnet"
)

// BNDParser reads the block grammar:
//
//	node NAME {
//	    logic = (RULE);
//	}
//
// Keywords are case-insensitive. Rules already use the &,|,! operators. A
// block without a logic line declares a constant/input placeholder. A block
// whose rule text is broken is kept with the raw text; the evaluator deals
// with it at tick time.
type BNDParser struct{}

var (
	bndBlockStart = regexp.MustCompile(`(?i)\bnode\s+([A-Za-z_][\w.]*)\s*\{`)
	bndLogicLine  = regexp.MustCompile(`(?is)\blogic\s*=\s*(.+?)\s*;`)
	bndLogicOpen  = regexp.MustCompile(`(?is)\blogic\s*=\s*(.+)$`)
)

func (p *BNDParser) Name() string { return "bnd" }

func (p *BNDParser) Parse(text string) (boolnet.Network, []Warning, error) {
	net := make(boolnet.Network)
	warns := make([]Warning, 0)

	rest := text
	for {
		loc := bndBlockStart.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}
		name := rest[loc[2]:loc[3]]
		body := rest[loc[1]:]

		end := strings.IndexByte(body, '}')
		if end < 0 {
			warns = append(warns, Warning{Node: name, Message: "unterminated block"})
			break
		}
		block := body[:end]
		rest = body[end+1:]

		if net.Has(name) {
			warns = append(warns, Warning{Node: name, Message: "duplicate definition, later one wins"})
		}

		node := &boolnet.Node{Name: name}
		if m := bndLogicLine.FindStringSubmatch(block); m != nil {
			node.Rule = strings.TrimSpace(m[1])
		} else if m := bndLogicOpen.FindStringSubmatch(block); m != nil {
			// Missing semicolon: keep the raw text and let evaluation fail softly.
			node.Rule = strings.TrimSpace(m[1])
			warns = append(warns, Warning{Node: name, Message: "logic line missing terminator"})
		} else {
			node.IsInput = true
		}
		net[name] = node
	}

	return net, warns, nil
}

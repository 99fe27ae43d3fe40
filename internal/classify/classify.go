// Package classify decides whether a URL points at a company's own site or
// at a financial/investor page about the company.
package classify

import (
	"os"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// nonBrandPatterns match URLs that are not a company's main website: stock
// quotes, investor relations subdomains and paths, regulatory filings, and
// financial news aggregators.
var nonBrandPatterns = []string{
	`yahoo\.com`,
	`finance\.yahoo`,
	`/quote/`,
	`\bfinance\.`,
	`\bir\.`,
	`\binvestors\.`,
	`\binvestor\.`,
	`sec\.gov`,
	`nasdaq\.com`,
	`bloomberg\.com`,
	`reuters\.com`,
	`edgar`,
	`investorrelations`,
	`/investor[s]?[/\s]`,
	`/ir[/\s]`,
	`/shareholder`,
}

// Classifier flags non-brand URLs against a fixed, unordered rule set.
type Classifier struct {
	re *regexp.Regexp
}

// New builds a classifier from the built-in pattern set plus any extra
// patterns. Extra patterns extend the set, they never replace it.
func New(extra ...string) (*Classifier, error) {
	patterns := make([]string, 0, len(nonBrandPatterns)+len(extra))
	patterns = append(patterns, nonBrandPatterns...)
	patterns = append(patterns, extra...)

	re, err := regexp.Compile("(?i)" + strings.Join(patterns, "|"))
	if err != nil {
		return nil, eris.Wrap(err, "classify: compile patterns")
	}
	return &Classifier{re: re}, nil
}

// rulesFile is the YAML shape of an external pattern file.
type rulesFile struct {
	Patterns []string `yaml:"patterns"`
}

// NewFromRulesFile builds a classifier extended with patterns from a YAML
// rules file. An empty path yields the built-in set only.
func NewFromRulesFile(path string) (*Classifier, error) {
	if path == "" {
		return New()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "classify: read rules file %s", path)
	}

	var rules rulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, eris.Wrapf(err, "classify: parse rules file %s", path)
	}

	return New(rules.Patterns...)
}

// IsNonBrandPage reports whether url is not a company's main site (e.g. a
// Yahoo Finance quote or an investor relations page). Empty input is not
// classified.
func (c *Classifier) IsNonBrandPage(url string) bool {
	if url == "" {
		return false
	}
	return c.re.MatchString(url)
}

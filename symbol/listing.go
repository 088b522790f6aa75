package symbol

import (
	"fmt"
	"iter"
	"strings"

	"github.com/grafana/regexp"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// regUndefined matches an undefined symbol line of an nm listing. The scan
// runs over the whole document, so whitespace may cross line breaks, and the
// capture is the rest of the line with no trimming. The whitespace class is
// Unicode whitespace, not just ASCII \s.
var regUndefined = regexp.MustCompile(space + `+U` + space + `+(.*)`)

const space = `[\s\v\p{Z}\x1c-\x1f\x85]`

// newlines folds \r\n and lone \r into \n, as listings are read in text mode.
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

type Listing struct {
	filename string
	content  string
}

func NewListing(filename, content string) *Listing {
	return &Listing{filename: filename, content: newlines.Replace(content)}
}

// Load reads the whole listing into memory and releases the file right away.
func Load(fs afero.Fs, filename string) (*Listing, error) {
	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, errors.Wrapf(err, "read symbol listing %s", filename)
	}
	return NewListing(filename, string(data)), nil
}

func (l *Listing) ID() string {
	return fmt.Sprintf("listing:%s", l.filename)
}

func (l *Listing) Size() int {
	return len(l.content)
}

// Symbols yields the captured names in the order they appear.
func (l *Listing) Symbols() iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := l.content
		for {
			loc := regUndefined.FindStringSubmatchIndex(rest)
			if loc == nil {
				return
			}
			if !yield(rest[loc[2]:loc[3]]) {
				return
			}
			rest = rest[loc[1]:]
		}
	}
}

func (l *Listing) Names() (names []string) {
	for name := range l.Symbols() {
		names = append(names, name)
	}
	return
}

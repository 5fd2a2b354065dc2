package parse

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Progress shows a spinner on stderr while rows are classified.
// A nil *Progress is a no-op.
type Progress struct {
	s *spinner.Spinner
}

func NewProgress() *Progress {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " reading input"
	return &Progress{s: s}
}

func (p *Progress) Start() {
	if p == nil {
		return
	}
	p.s.Start()
}

// Update reports the number of rows processed so far.
func (p *Progress) Update(rows int) {
	if p == nil {
		return
	}
	p.s.Lock()
	p.s.Suffix = fmt.Sprintf(" classified %d rows", rows)
	p.s.Unlock()
}

func (p *Progress) Stop() {
	if p == nil {
		return
	}
	p.s.Stop()
}

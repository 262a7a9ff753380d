package progressbar

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mitchellh/colorstring"
	"github.com/rivo/uniseg"
	"golang.org/x/term"

	"iiifview/pkg/util"
)

// ProgressBar renders a single-line terminal progress bar. Safe for
// concurrent Add calls.
type ProgressBar struct {
	mu          sync.Mutex
	out         io.Writer
	max         int64
	current     int64
	description string
	startTime   time.Time
	lastRender  time.Time
	finished    bool
	bytes       bool
}

const (
	saucer        = "█"
	saucerPadding = " "
	barStart      = "|"
	barEnd        = "|"

	// Redraws are throttled so tight loops do not spend their time
	// printing.
	renderInterval = 65 * time.Millisecond
)

// Default returns a bar writing to stderr with count and rate display.
func Default(max int64, description ...string) *ProgressBar {
	desc := ""
	if len(description) > 0 {
		desc = description[0]
	}
	return &ProgressBar{
		out:         os.Stderr,
		max:         max,
		description: desc,
		startTime:   time.Now(),
	}
}

// DefaultBytes returns a bar for a byte total, e.g. one download. The
// count and rate are shown in byte units.
func DefaultBytes(max int64, description ...string) *ProgressBar {
	p := Default(max, description...)
	p.bytes = true
	return p
}

// Describe replaces the text in front of the bar.
func (p *ProgressBar) Describe(description string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.description = description
	p.render(false)
}

func (p *ProgressBar) Add(num int) error {
	return p.Add64(int64(num))
}

func (p *ProgressBar) Add64(num int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return nil
	}
	p.current += num
	if p.max > 0 && p.current > p.max {
		p.current = p.max
	}
	p.render(false)
	return nil
}

func (p *ProgressBar) Set64(num int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return nil
	}
	p.current = num
	p.render(false)
	return nil
}

// Finish fills the bar and moves to the next line.
func (p *ProgressBar) Finish() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return nil
	}
	p.current = p.max
	p.finished = true
	p.render(true)
	fmt.Fprintln(p.out)
	return nil
}

func (p *ProgressBar) render(force bool) {
	now := time.Now()
	if !force && now.Sub(p.lastRender) < renderInterval {
		return
	}
	p.lastRender = now

	percent := 0.0
	if p.max > 0 {
		percent = float64(p.current) / float64(p.max)
	}

	elapsed := now.Sub(p.startTime).Seconds()
	rate := 0.0
	if elapsed > 0 {
		rate = float64(p.current) / elapsed
	}

	var stats string
	if p.bytes {
		stats = fmt.Sprintf(" %3.0f%% (%s/%s, %s/s)", percent*100,
			util.ByteUnitString(p.current), util.ByteUnitString(p.max), util.ByteUnitString(int64(rate)))
	} else {
		stats = fmt.Sprintf(" %3.0f%% (%d/%d, %.0f it/s)", percent*100, p.current, p.max, rate)
	}

	width := terminalWidth() - uniseg.StringWidth(p.description) - uniseg.StringWidth(stats) - 4
	if width < 10 {
		width = 10
	}
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(saucer, filled) + strings.Repeat(saucerPadding, width-filled)

	line := fmt.Sprintf("\r%s %s[cyan]%s[reset]%s%s",
		p.description, barStart, bar, barEnd, stats)
	fmt.Fprint(p.out, colorstring.Color(line))
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ZaguanLabs/transly"
)

const banner = ` _____                    _
|_   _| __ __ _ _ __  ___| |_   _
  | || '__/ _` + "`" + ` | '_ \/ __| | | | |
  | || | | (_| | | | \__ \ | |_| |
  |_||_|  \__,_|_| |_|___/_|\__, |
                            |___/`

func printBanner(w io.Writer) {
	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "%s v%s\n", strings.Repeat(" ", 22), transly.Version)
}

func printWelcome(w io.Writer) {
	fmt.Fprint(w, `
Welcome to Transly CLI Tool!

You can use the following commands to get started:

  transly translate <file_path> -l <target_language>
    - Translate a file to the specified target language.

Options:
  -s, --source <source>: Specify the source language (default: en)

Examples:
  transly translate test.json -l fa
  transly translate test.csv -l es -s en
`)
	fmt.Fprintf(w, "\nRepository: %s\n", transly.Repository)
}

const barWidth = 40

// progressBar renders a single line that is redrawn in place.
type progressBar struct {
	w       io.Writer
	start   time.Time
	now     func() time.Time
	drawn   bool
	lastLen int
}

func newProgressBar(w io.Writer) *progressBar {
	return &progressBar{w: w, start: time.Now(), now: time.Now}
}

// Update redraws the bar. The pipeline serializes calls.
func (b *progressBar) Update(done, total int) {
	line := b.render(done, total)
	pad := ""
	if n := b.lastLen - len(line); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	fmt.Fprintf(b.w, "\r%s%s", line, pad)
	b.lastLen = len(line)
	b.drawn = true
}

// Finish ends the bar's line so later output starts on a fresh one.
func (b *progressBar) Finish() {
	if b.drawn {
		fmt.Fprintln(b.w)
		b.drawn = false
	}
}

func (b *progressBar) render(done, total int) string {
	ratio := 1.0
	if total > 0 {
		ratio = float64(done) / float64(total)
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * barWidth)

	eta := "0s"
	if done > 0 && done < total {
		elapsed := b.now().Sub(b.start)
		remaining := time.Duration(float64(elapsed) / float64(done) * float64(total-done))
		eta = remaining.Round(time.Second).String()
	}

	return fmt.Sprintf("progress [%s%s] %3d%% | ETA: %s | %d/%d",
		strings.Repeat("█", filled),
		strings.Repeat("░", barWidth-filled),
		int(ratio*100), eta, done, total)
}

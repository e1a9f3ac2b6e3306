// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package pbar

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const MinRefreshRate = time.Millisecond * 500

// ProgressBarState renders a single-line progress bar against an arbitrary
// (done, total) counter pair — MFT records decoded, clusters streamed,
// whatever label names. It is driven directly by an ntfs.Progress callback.
type ProgressBarState struct {
	Label          string
	Total          int64
	Done           int64
	StartTime      time.Time
	LastUpdateTime time.Time
	LastDone       int64
}

// NewProgressBarState initializes a new ProgressBarState.
func NewProgressBarState() *ProgressBarState {
	return &ProgressBarState{
		StartTime:      time.Now(),
		LastUpdateTime: time.Unix(0, 0),
	}
}

// Update feeds one (done, total, label) report into the bar and renders it,
// throttled to MinRefreshRate except for a report with done == total, which
// always renders. It matches the
// ntfs.Progress signature so it can be passed as a callback directly.
func (pbs *ProgressBarState) Update(done, total int64, label string) {
	pbs.Done = done
	pbs.Total = total
	pbs.Label = label
	pbs.render(done == total)
}

func (pbs *ProgressBarState) render(force bool) {
	if !force && (pbs.LastUpdateTime.IsZero() || time.Since(pbs.LastUpdateTime) < MinRefreshRate) {
		return
	}
	if pbs.Total == 0 {
		return
	}

	percentage := float64(pbs.Done) / float64(pbs.Total) * 100

	barLength := 20
	filledLen := int(float64(barLength) * percentage / 100)
	var bar string
	if filledLen >= barLength {
		bar = strings.Repeat("=", barLength)
	} else {
		bar = strings.Repeat("=", filledLen) + ">" + strings.Repeat(" ", barLength-filledLen-1)
	}

	elapsed := time.Since(pbs.LastUpdateTime)
	currentRate := float64(pbs.Done-pbs.LastDone) / elapsed.Seconds()

	var etaStr string
	if pbs.Done > 0 && currentRate > 0 {
		remaining := pbs.Total - pbs.Done
		etaSeconds := float64(remaining) / currentRate
		etaStr = fmt.Sprintf("%02d:%02d:%02d remaining",
			int(etaSeconds/3600),
			int(etaSeconds/60)%60,
			int(etaSeconds)%60)
	} else {
		etaStr = "calculating..."
	}

	pbs.LastUpdateTime = time.Now()
	pbs.LastDone = pbs.Done

	fmt.Fprintf(os.Stdout, "\r[INFO] %s: [%s] %3.0f%% (%s/%s) @ %s/s [%s]    ",
		pbs.Label,
		bar,
		percentage,
		humanize.Comma(pbs.Done),
		humanize.Comma(pbs.Total),
		humanize.Comma(int64(currentRate)),
		etaStr)

	os.Stdout.Sync()
}

// Finish prints a trailing newline, ending the progress bar's line.
func (pbs *ProgressBarState) Finish() {
	fmt.Println()
}

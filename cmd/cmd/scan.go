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
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf16"

	"github.com/spf13/cobra"

	"github.com/ntfsidx/ntfsidx/internal/logger"
	"github.com/ntfsidx/ntfsidx/pkg/diskindex"
	"github.com/ntfsidx/ntfsidx/pkg/pbar"
)

func DefineScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "scan",
		Short:        "Index the MFT of one or more fixed NTFS drives and query it",
		SilenceUsage: true,
		RunE:         RunScan,
	}

	cmd.Flags().String("drives", "", "comma-separated drive letters to index, e.g. C,D (default: all fixed drives)")
	cmd.Flags().StringSlice("ext", nil, "file extensions to match (mutually exclusive with --pattern)")
	cmd.Flags().String("pattern", "", "single-wildcard (*) name pattern to match (mutually exclusive with --ext)")
	cmd.Flags().StringSlice("blacklist", nil, "absolute path prefix to exclude from results; repeatable")
	cmd.Flags().Bool("include-deleted", false, "include entries no longer marked in-use")
	cmd.Flags().Bool("case-sensitive", false, "match --pattern case-sensitively")
	cmd.Flags().String("log-level", "INFO", "log level: DEBUG, INFO, WARN, ERROR")

	return cmd
}

func RunScan(cmd *cobra.Command, args []string) error {
	level, _ := cmd.Flags().GetString("log-level")
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: true,
		Level:     logger.ParseLevel(level).ToSlog(),
	}))

	drivesFlag, _ := cmd.Flags().GetString("drives")
	exts, _ := cmd.Flags().GetStringSlice("ext")
	pattern, _ := cmd.Flags().GetString("pattern")
	blacklist, _ := cmd.Flags().GetStringSlice("blacklist")
	includeDeleted, _ := cmd.Flags().GetBool("include-deleted")
	caseSensitive, _ := cmd.Flags().GetBool("case-sensitive")

	if len(exts) > 0 && pattern != "" {
		return fmt.Errorf("--ext and --pattern are mutually exclusive")
	}

	bar := pbar.NewProgressBarState()
	mgr := diskindex.New(log, bar.Update)
	defer mgr.Close()

	wanted := parseDrives(drivesFlag)
	opened, err := mgr.Open(wanted)
	bar.Finish()
	if err != nil {
		log.Warn("some drives failed to open", "error", err)
	}
	if opened == 0 {
		return fmt.Errorf("no NTFS drives were opened")
	}

	if len(blacklist) > 0 {
		mgr.SetBlacklist(blacklist)
	}

	hits := 0
	sink := func(path, fileName []uint16) {
		fmt.Println(string(utf16.Decode(path)) + string(utf16.Decode(fileName)))
	}

	switch {
	case pattern != "":
		hits = mgr.QueryPattern(opened, pattern, caseSensitive, includeDeleted, sink)
	case len(exts) > 0:
		hits = mgr.QueryExtensions(opened, normalizeExts(exts), includeDeleted, sink)
	default:
		hits = mgr.EnumerateFiles(opened, includeDeleted, sink)
	}

	log.Info("query complete", "hits", hits)
	return nil
}

func parseDrives(spec string) diskindex.Bitmask32 {
	if spec == "" {
		var all diskindex.Bitmask32
		for c := byte('A'); c <= 'Z'; c++ {
			all |= diskindex.DriveBit(c)
		}
		return all
	}

	var mask diskindex.Bitmask32
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if len(part) == 0 {
			continue
		}
		mask |= diskindex.DriveBit(part[0])
	}
	return mask
}

func normalizeExts(exts []string) []string {
	out := make([]string, len(exts))
	for i, e := range exts {
		out[i] = strings.ToLower(strings.TrimPrefix(e, "."))
	}
	return out
}

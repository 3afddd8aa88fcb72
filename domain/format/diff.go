package format

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/stashmcp/stashmcp/domain/scm"
)

// Default limits for streamed diff rendering.
const (
	DefaultMaxLines = 2000
	DefaultMaxFiles = 50
)

// ErrInvalidLimit indicates a non-positive line or file limit.
var ErrInvalidLimit = errors.New("limit must be positive")

// DiffOption adjusts streamed diff rendering.
type DiffOption func(*diffLimits)

type diffLimits struct {
	maxLines int
	maxFiles int
}

// WithMaxLines caps the total rendered line count.
func WithMaxLines(n int) DiffOption {
	return func(l *diffLimits) { l.maxLines = n }
}

// WithMaxFiles caps the number of rendered files.
func WithMaxFiles(n int) DiffOption {
	return func(l *diffLimits) { l.maxFiles = n }
}

// Diff renders a fully materialized set of per-file diffs without
// truncation; bounding the input is the caller's concern. Cancellation is
// checked between files, and a cancelled call discards the partial buffer
// and returns ctx.Err().
func Diff(ctx context.Context, diffs []scm.Diff) (string, error) {
	var b strings.Builder
	for _, d := range diffs {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		writeFileDiff(&b, d)
	}
	return b.String(), nil
}

// DiffStream renders per-file diffs from stream, in delivery order, until
// the stream is drained or a limit is reached.
//
// Boundary policy: a file is rendered only if including it in full keeps
// both the line and the file counter at or under their limits. The first
// file whose lines would push the line counter past its limit is excluded
// entirely and ends consumption; a file that lands exactly on either limit
// is included and also ends consumption. No file is ever rendered
// partially, and the same rule applies to both limits.
//
// When consumption stops at a limit, a trailing notice names the limiting
// dimension and, if the stream reports a file total, how many files the
// complete diff covers. The notice is suppressed when the total shows every
// file was rendered anyway.
//
// Errors: a non-positive limit fails with ErrInvalidLimit before the stream
// is touched; cancellation, checked once per chunk, discards the buffer and
// returns ctx.Err(); stream errors are returned verbatim. No partial text
// accompanies any error.
func DiffStream(ctx context.Context, stream scm.DiffStream, opts ...DiffOption) (string, error) {
	limits := diffLimits{maxLines: DefaultMaxLines, maxFiles: DefaultMaxFiles}
	for _, opt := range opts {
		opt(&limits)
	}
	if limits.maxLines <= 0 {
		return "", fmt.Errorf("%w: maxLines is %d", ErrInvalidLimit, limits.maxLines)
	}
	if limits.maxFiles <= 0 {
		return "", fmt.Errorf("%w: maxFiles is %d", ErrInvalidLimit, limits.maxFiles)
	}

	var b strings.Builder
	files := 0
	lines := 0
	var limit string

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		d, err := stream.Next(ctx)
		if errors.Is(err, io.EOF) {
			// Drained: nothing was held back, even if a counter sits
			// exactly at its limit.
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}

		n := lineCount(d)
		if lines+n > limits.maxLines {
			limit = "line"
			break
		}

		writeFileDiff(&b, d)
		files++
		lines += n

		if lines == limits.maxLines {
			limit = "line"
			break
		}
		if files == limits.maxFiles {
			limit = "file"
			break
		}
	}

	var reason string
	if limit == "line" {
		reason = fmt.Sprintf("line limit %d reached", limits.maxLines)
	} else {
		reason = fmt.Sprintf("file limit %d reached", limits.maxFiles)
	}

	if total, ok := stream.TotalFiles(); ok {
		if files >= total {
			return b.String(), nil
		}
		fmt.Fprintf(&b, "[diff truncated after %d of %d files: %s]\n", files, total, reason)
	} else {
		fmt.Fprintf(&b, "[diff truncated after %d files: %s]\n", files, reason)
	}
	return b.String(), nil
}

// writeFileDiff renders one file: a header line naming the change kind and
// paths, then each hunk as a range line followed by prefixed lines.
func writeFileDiff(b *strings.Builder, d scm.Diff) {
	b.WriteString(fileHeader(d))
	b.WriteByte('\n')
	for _, h := range d.Hunks {
		fmt.Fprintf(b, "@@ -%d,%d +%d,%d @@\n", h.SourceLine, h.SourceSpan, h.DestinationLine, h.DestinationSpan)
		for _, seg := range h.Segments {
			prefix := segmentPrefix(seg.Type)
			for _, line := range seg.Lines {
				b.WriteString(prefix)
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}
	}
}

// lineCount is the exact number of lines writeFileDiff emits for d.
func lineCount(d scm.Diff) int {
	n := 1
	for _, h := range d.Hunks {
		n++
		for _, seg := range h.Segments {
			n += len(seg.Lines)
		}
	}
	return n
}

// fileHeader names the change kind and the paths involved. A missing change
// type is derived from which paths are present: add, delete, or modify.
func fileHeader(d scm.Diff) string {
	kind := d.Type
	if kind == "" {
		switch {
		case d.Source == "":
			kind = scm.ChangeAdd
		case d.Destination == "":
			kind = scm.ChangeDelete
		default:
			kind = scm.ChangeModify
		}
	}
	switch {
	case d.Source == "":
		return fmt.Sprintf("%s: %s", kind, d.Destination)
	case d.Destination == "" || d.Destination == d.Source:
		return fmt.Sprintf("%s: %s", kind, d.Source)
	default:
		return fmt.Sprintf("%s: %s -> %s", kind, d.Source, d.Destination)
	}
}

func segmentPrefix(t scm.SegmentType) string {
	switch t {
	case scm.SegmentAdded:
		return "+"
	case scm.SegmentRemoved:
		return "-"
	default:
		return " "
	}
}

package scm

import "context"

// ChangeType classifies what happened to a file in a diff.
type ChangeType string

// Change types reported by the server.
const (
	ChangeAdd     ChangeType = "ADD"
	ChangeCopy    ChangeType = "COPY"
	ChangeDelete  ChangeType = "DELETE"
	ChangeModify  ChangeType = "MODIFY"
	ChangeMove    ChangeType = "MOVE"
	ChangeUnknown ChangeType = "UNKNOWN"
)

// SegmentType tags the lines of a hunk segment.
type SegmentType string

// Segment types.
const (
	SegmentAdded   SegmentType = "ADDED"
	SegmentRemoved SegmentType = "REMOVED"
	SegmentContext SegmentType = "CONTEXT"
)

// Segment is a run of equally tagged lines within a hunk.
type Segment struct {
	Type  SegmentType `json:"type"`
	Lines []string    `json:"lines"`
}

// Hunk is one contiguous block of changes within a file, with the line
// ranges it covers on each side.
type Hunk struct {
	SourceLine      int       `json:"sourceLine"`
	SourceSpan      int       `json:"sourceSpan"`
	DestinationLine int       `json:"destinationLine"`
	DestinationSpan int       `json:"destinationSpan"`
	Segments        []Segment `json:"segments"`
}

// Diff is the full set of changes to one file. Source is empty for added
// files, Destination for deleted ones.
type Diff struct {
	Source      string     `json:"source"`
	Destination string     `json:"destination"`
	Type        ChangeType `json:"type"`
	Hunks       []Hunk     `json:"hunks"`
}

// DiffStream yields per-file diffs one at a time in delivery order. The
// sequence is lazy, finite, and non-restartable; a consumer may stop early
// without draining it. Implementations are not safe for concurrent use.
type DiffStream interface {
	// Next returns the next file diff, or io.EOF once the stream is
	// drained. Any other error is a source failure and is final.
	Next(ctx context.Context) (Diff, error)

	// TotalFiles reports how many files the complete diff covers, when the
	// source knows. Sources that cannot tell return ok false.
	TotalFiles() (total int, ok bool)
}

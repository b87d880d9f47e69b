package retrosheet

import "strings"

// RecordKind classifies a raw field vector by its first field.
type RecordKind int

const (
	RecordUnrecognized RecordKind = iota
	RecordGameID
	RecordVersion
	RecordInfo
	RecordAppearance // start or sub
	RecordPlay
	RecordBatHandAdjustment    // badj
	RecordPitchHandAdjustment  // padj
	RecordLineupAdjustment     // ladj
	RecordRunnerAdjustment     // radj
	RecordPitcherRespAdjustment // presadj
	RecordEarnedRunData        // data er
	RecordComment              // com
	RecordBoxScoreStat         // stat
	RecordBoxScoreLine         // line
	RecordBoxScoreEvent        // event
)

func (k RecordKind) String() string {
	switch k {
	case RecordGameID:
		return "id"
	case RecordVersion:
		return "version"
	case RecordInfo:
		return "info"
	case RecordAppearance:
		return "appearance"
	case RecordPlay:
		return "play"
	case RecordBatHandAdjustment:
		return "badj"
	case RecordPitchHandAdjustment:
		return "padj"
	case RecordLineupAdjustment:
		return "ladj"
	case RecordRunnerAdjustment:
		return "radj"
	case RecordPitcherRespAdjustment:
		return "presadj"
	case RecordEarnedRunData:
		return "data er"
	case RecordComment:
		return "com"
	case RecordBoxScoreStat:
		return "stat"
	case RecordBoxScoreLine:
		return "line"
	case RecordBoxScoreEvent:
		return "event"
	default:
		return "unrecognized"
	}
}

// Record is a dispatched, but not yet fully decoded, raw field vector.
type Record struct {
	Kind       RecordKind
	Fields     []string // fields after the leading discriminant(s)
	Raw        []string // the full original field vector
	LineNumber int
}

// arity gives the minimum required field count (including the
// discriminant) for record kinds with a fixed shape. Kinds not present here
// are variable-arity (info, box-score rows) or carry their own validation.
var arity = map[RecordKind]int{
	RecordGameID:                2,
	RecordAppearance:            6,
	RecordPlay:                  7,
	RecordBatHandAdjustment:     3,
	RecordPitchHandAdjustment:   3,
	RecordLineupAdjustment:      3,
	RecordRunnerAdjustment:      3,
	RecordPitcherRespAdjustment: 3,
	RecordEarnedRunData:         4,
	RecordComment:               2,
}

// Tokenize dispatches a trimmed field vector to a Record by its first
// field(s), validating arity for fixed-shape kinds. Unknown first fields
// produce a RecordUnrecognized Record and a non-nil error; callers may
// choose to skip or abort per their configured policy.
func Tokenize(fields []string, lineNumber int) (Record, error) {
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) == 0 {
		return Record{Kind: RecordUnrecognized, LineNumber: lineNumber}, NewUnrecognizedRecordError("", lineNumber)
	}

	kind := classify(fields)
	rec := Record{Kind: kind, Fields: fields[1:], Raw: fields, LineNumber: lineNumber}

	if kind == RecordUnrecognized {
		return rec, NewUnrecognizedRecordError(fields[0], lineNumber)
	}
	if want, ok := arity[kind]; ok && len(fields) < want {
		return rec, NewParseShapeError(kind.String(), want, len(fields), lineNumber)
	}
	if kind == RecordEarnedRunData && (len(fields) < 2 || fields[1] != "er") {
		return rec, NewUnrecognizedRecordError(strings.Join(fields[:min(2, len(fields))], " "), lineNumber)
	}
	return rec, nil
}

func classify(fields []string) RecordKind {
	switch fields[0] {
	case "id", "7d":
		return RecordGameID
	case "version":
		return RecordVersion
	case "info":
		return RecordInfo
	case "start", "sub":
		return RecordAppearance
	case "play":
		return RecordPlay
	case "badj":
		return RecordBatHandAdjustment
	case "padj":
		return RecordPitchHandAdjustment
	case "ladj":
		return RecordLineupAdjustment
	case "radj":
		return RecordRunnerAdjustment
	case "presadj":
		return RecordPitcherRespAdjustment
	case "data":
		return RecordEarnedRunData
	case "com":
		return RecordComment
	case "stat":
		return RecordBoxScoreStat
	case "line":
		return RecordBoxScoreLine
	case "event":
		return RecordBoxScoreEvent
	default:
		return RecordUnrecognized
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IsStartRecord reports whether the original first field for an Appearance
// record was "start" rather than "sub".
func IsStartRecord(raw []string) bool {
	return len(raw) > 0 && raw[0] == "start"
}

package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps short paths and shortens long ones to the basename.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures human-readable output.
type PrettyOpts struct {
	Color    bool
	Context  int // lines shown above the primary line
	PathMode PathMode
	BaseDir  string // for PathModeRelative
	// ShowNotes prints notes with their own source excerpt.
	ShowNotes bool
}

// JSONOpts configures JSON output.
type JSONOpts struct {
	IncludePositions bool // add row/column pairs
	PathMode         PathMode
	BaseDir          string
	Max              int // truncates the output, not the bag
	IncludeNotes     bool
}

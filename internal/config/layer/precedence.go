package layer

// Standard priority levels for property layers.
// Higher values are consulted first during resolution.
const (
	// PriorityTheme is the lowest priority, for theme defaults.
	PriorityTheme = 0

	// PriorityGrid is for grid-wide settings, including loaded config files.
	PriorityGrid = 100

	// PriorityEnv is for environment variable overrides of grid settings.
	PriorityEnv = 150

	// PriorityBehavior is for settings supplied by the grid's behavior.
	PriorityBehavior = 200

	// PriorityColumn is for per-column overrides.
	PriorityColumn = 300

	// PriorityCell is for per-cell overrides.
	PriorityCell = 400

	// PrioritySession is the highest priority, for runtime overrides.
	PrioritySession = 1000
)

// Source indicates what a property layer represents.
type Source uint8

const (
	// SourceTheme represents theme defaults.
	SourceTheme Source = iota
	// SourceGrid represents grid-wide settings.
	SourceGrid
	// SourceEnv represents environment variables.
	SourceEnv
	// SourceBehavior represents behavior-supplied settings.
	SourceBehavior
	// SourceColumn represents a column override.
	SourceColumn
	// SourceCell represents a cell override.
	SourceCell
	// SourceSession represents in-memory session overrides.
	SourceSession
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceTheme:
		return "theme"
	case SourceGrid:
		return "grid"
	case SourceEnv:
		return "environment"
	case SourceBehavior:
		return "behavior"
	case SourceColumn:
		return "column"
	case SourceCell:
		return "cell"
	case SourceSession:
		return "session"
	default:
		return "unknown"
	}
}

// DefaultPriority returns the default priority for a given source.
func DefaultPriority(source Source) int {
	switch source {
	case SourceTheme:
		return PriorityTheme
	case SourceGrid:
		return PriorityGrid
	case SourceEnv:
		return PriorityEnv
	case SourceBehavior:
		return PriorityBehavior
	case SourceColumn:
		return PriorityColumn
	case SourceCell:
		return PriorityCell
	case SourceSession:
		return PrioritySession
	default:
		return PriorityTheme
	}
}

// StandardLayerName returns the conventional layer name for a source.
func StandardLayerName(source Source) string {
	return source.String()
}

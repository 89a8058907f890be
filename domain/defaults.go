package domain

// ============================================================================
// God Class Detection Defaults
// ============================================================================

// Split constraints applied to every dendrogram bipartition.
const (
	// DefaultMinExtractedMembers is the smallest extracted side worth a new class.
	DefaultMinExtractedMembers = 2

	// DefaultMinExtractedMethods requires the new class to carry behavior.
	DefaultMinExtractedMethods = 1

	// DefaultMinExtractedFields requires the new class to carry state.
	DefaultMinExtractedFields = 1

	// DefaultMinRetainedMembers is the smallest clustered side left in the source class.
	DefaultMinRetainedMembers = 1
)

// Ranking thresholds.
// Reference: Fokaefs, M., Tsantalis, N., Stroulia, E., Chatzigeorgiou, A. (2012).
// Identification and application of Extract Class refactorings in object-oriented systems.
const (
	// DefaultMinCohesionGain is the minimum (cross - intra) distance difference.
	// Splits below it do not make either class measurably more cohesive.
	DefaultMinCohesionGain = 0.15

	// DefaultMinScore keeps every candidate that passed the cohesion gain filter.
	DefaultMinScore = 0.0

	// DefaultMaxCandidatesPerClass caps the ranked list of a single group.
	DefaultMaxCandidatesPerClass = 10
)

// Target naming.
const (
	// DefaultTargetSuffix is appended to the source class name for the new class.
	DefaultTargetSuffix = "Product"

	// DefaultMaxNameAttempts bounds the numbered-suffix search for a free name.
	DefaultMaxNameAttempts = 100

	// DefaultSourceParameterName is the parameter moved methods receive when they
	// still need members of the source class.
	DefaultSourceParameterName = "source"
)

// ============================================================================
// Analysis Defaults
// ============================================================================

const (
	// DefaultMaxGoroutines bounds per-class analysis concurrency.
	DefaultMaxGoroutines = 4

	// DefaultTimeoutSeconds is the analysis deadline for a whole run.
	DefaultTimeoutSeconds = 300
)

// DefaultIncludePatterns lists the file kinds the bundled frontends read
var DefaultIncludePatterns = []string{"**/*.java", "**/*.py", "**/*.yaml", "**/*.yml", "**/*.json"}

// ============================================================================
// Usage Telemetry Defaults
// ============================================================================

const (
	// DefaultHeartbeatInitialDelay is the delay before the first "registered" event.
	DefaultHeartbeatInitialDelay = "11m"

	// DefaultHeartbeatInterval is the period of the "registered" event.
	DefaultHeartbeatInterval = "24h"
)

package constants

import "os"

const (
	LibraryDirEnv = "FRETWORK_LIBRARY_DIR"
	AddrEnv       = "FRETWORK_ADDR"
	LogLevelEnv   = "FRETWORK_LOG_LEVEL"
)

const (
	DefaultAddr     = ":8080"
	DefaultLogLevel = "info"
)

// The getters return "" when the variable is unset.

func GetLibraryDir() string {
	return os.Getenv(LibraryDirEnv)
}

func GetAddr() string {
	return os.Getenv(AddrEnv)
}

func GetLogLevel() string {
	return os.Getenv(LogLevelEnv)
}

const NumStrings = 6

// MaxFret is the default upper bound on scanned and clamped frets.
const MaxFret = 24

// PreferMinFret is the lowest fret an anchor search will settle on before
// falling back to a lower match. Keeps overlays off the open strings when the
// neck allows it; there is no deeper musical rule behind the number.
const PreferMinFret = 3

// ScalePositionWindow is the number of frets scanned per string, starting at
// the position's start fret.
const ScalePositionWindow = 7

const (
	ShapeOverlayOpacity         = 0.3
	ScalePositionOverlayOpacity = 0.4
	ContextMarkerOpacity        = 0.2
)

// DefaultRootPitch is used when a root note name cannot be resolved.
const DefaultRootPitch = 40

const BeatsPer16th = 0.25

var StandardOpenPitches = [NumStrings]int{64, 59, 55, 50, 45, 40}
var StandardStringNames = [NumStrings]string{"E", "B", "G", "D", "A", "E"}

var NotesSharp = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
var NotesFlat = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

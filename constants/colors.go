package constants

const DefaultIntervalColor = "#94a3b8"

var IntervalColors = map[string]string{
	"R":  "#ef4444",
	"b2": "#fca5a5",
	"2":  "#fb923c",
	"b3": "#fde047",
	"3":  "#facc15",
	"4":  "#86efac",
	"b5": "#22c55e",
	"5":  "#3b82f6",
	"b6": "#818cf8",
	"6":  "#6366f1",
	"b7": "#c084fc",
	"7":  "#a855f7",
}

// IntervalColorAliases maps enharmonic or compound labels onto a key of
// IntervalColors.
var IntervalColorAliases = map[string]string{
	"1":   "R",
	"bb7": "6",
	"#4":  "b5",
	"#5":  "b6",
}

// SemitoneLabels names each interval class relative to a root.
var SemitoneLabels = [12]string{"R", "b2", "2", "b3", "3", "4", "b5", "5", "b6", "6", "b7", "7"}

package config

var (
	DefaultAlgorithm      = "reduced"
	DefaultTimeout        = "0"
	DefaultWorkers        = 1
	DefaultFormat         = FormatText
	DefaultLogLevel       = "info"
	DefaultCurvesPerPrime = 11
)

// Output formats of batch runs.
const (
	FormatText = "text"
	FormatJSON = "json"
)

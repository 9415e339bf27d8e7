package app

// Config holds everything an App instance needs to run one action.
type Config struct {
	// ConfigPath is the HCL configuration file with endpoint and contract
	// blocks.
	ConfigPath string
	// Action is one of serve, query, invoke, register, unregister.
	Action string
	// Contract is the simple name of the contract an action targets.
	Contract string
	// Name is an explicit canonical object name, overriding derivation.
	Name string
	// Method is the operation name for the invoke action.
	Method string
	// Args is a JSON array of arguments for the invoke action.
	Args string
	// Port overrides the listen port for the serve action.
	Port int
	// LogFormat is "text" or "json".
	LogFormat string
	// LogLevel is debug, info, warn, or error.
	LogLevel string
}

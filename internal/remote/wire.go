package remote

// Error codes carried by ErrorResponse envelopes.
const (
	CodeAuthFailed      = "auth_failed"
	CodeNotFound        = "not_found"
	CodeInvalidArgument = "invalid_argument"
	CodeOperationFailed = "operation_failed"
	CodeBeanError       = "bean_error"
)

// SessionRequest opens an authenticated session.
type SessionRequest struct {
	ServiceURL string `json:"service_url"`
}

// SessionResponse carries the bearer token for the opened session.
type SessionResponse struct {
	Token string `json:"token"`
}

// NameRequest addresses an object by canonical name.
type NameRequest struct {
	Name string `json:"name"`
}

// InstanceOfRequest asks whether a named object satisfies a contract.
type InstanceOfRequest struct {
	Name     string `json:"name"`
	TypeName string `json:"type"`
}

// InvokeRequest forwards one operation call.
type InvokeRequest struct {
	Name   string `json:"name"`
	Method string `json:"method"`
	Args   []any  `json:"args,omitempty"`
}

// RegisterRequest registers a contract's implementation on the endpoint.
type RegisterRequest struct {
	TypeName string `json:"type"`
	Name     string `json:"name,omitempty"`
}

// BoolResponse carries a yes/no answer.
type BoolResponse struct {
	Value bool `json:"value"`
}

// ValueResponse carries an invocation result.
type ValueResponse struct {
	Value any `json:"value"`
}

// NameResponse carries a canonical object name.
type NameResponse struct {
	Name string `json:"name"`
}

// QueryEntry is one registered binding.
type QueryEntry struct {
	TypeName string `json:"type"`
	Name     string `json:"name"`
}

// QueryResponse lists every registered binding.
type QueryResponse struct {
	Entries []QueryEntry `json:"entries"`
}

// ErrorResponse is the envelope every non-2xx response carries.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CallError is an error the remote endpoint reported for an operation. It
// reproduces the endpoint's message and classification code so errors raised
// by the managed object itself keep their identity through this layer.
type CallError struct {
	Code    string
	Message string
}

func (e *CallError) Error() string { return e.Message }

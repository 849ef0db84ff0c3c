package errx

import (
	"fmt"
	"sync"
)

// Code identifies a registered error, e.g. "JOB_NOT_FOUND"
type Code string

type definition struct {
	errType Type
	status  int
	message string
}

// Registry holds the error codes of one domain. Codes are prefixed with
// the registry name so two domains can both register "NOT_FOUND".
type Registry struct {
	prefix string

	mu   sync.RWMutex
	defs map[Code]definition
}

// NewRegistry creates a registry for the given domain prefix
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		defs:   make(map[Code]definition),
	}
}

// Register declares a code. It panics on duplicates since registration
// happens in package-level var blocks.
func (r *Registry) Register(name string, t Type, status int, message string) Code {
	code := Code(fmt.Sprintf("%s_%s", r.prefix, name))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[code]; exists {
		panic(fmt.Sprintf("errx: duplicate error code %s", code))
	}
	r.defs[code] = definition{errType: t, status: status, message: message}
	return code
}

// New builds a fresh *Error for a registered code
func (r *Registry) New(code Code) *Error {
	r.mu.RLock()
	def, ok := r.defs[code]
	r.mu.RUnlock()

	if !ok {
		return New(fmt.Sprintf("unregistered error code %s", code), TypeInternal)
	}

	return &Error{
		Code:       string(code),
		Type:       def.errType,
		HTTPStatus: def.status,
		Message:    def.message,
	}
}

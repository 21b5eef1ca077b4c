package errors

type ErrorType string

const (
    ErrorTypeNotFound           ErrorType = "NOT_FOUND"
    ErrorTypeValidation         ErrorType = "VALIDATION"
    ErrorTypeAlreadyInitialized ErrorType = "ALREADY_INITIALIZED"
    ErrorTypeIO                 ErrorType = "IO"
    ErrorTypeInternal           ErrorType = "INTERNAL"
)

type Error struct {
    Type    ErrorType `json:"type"`
    Message string    `json:"message"`
    Cause   error     `json:"-"`
}

func (e *Error) Error() string {
    return e.Message
}

func (e *Error) Unwrap() error {
    return e.Cause
}

func NotFound(message string) *Error {
    return &Error{
        Type:    ErrorTypeNotFound,
        Message: message,
    }
}

func ValidationError(message string) *Error {
    return &Error{
        Type:    ErrorTypeValidation,
        Message: message,
    }
}

func AlreadyInitialized(message string) *Error {
    return &Error{
        Type:    ErrorTypeAlreadyInitialized,
        Message: message,
    }
}

func IO(message string, cause error) *Error {
    return &Error{
        Type:    ErrorTypeIO,
        Message: message,
        Cause:   cause,
    }
}

// IsType walks the wrap chain looking for a jot error of the given type.
func IsType(err error, t ErrorType) bool {
    for err != nil {
        if e, ok := err.(*Error); ok {
            return e.Type == t
        }
        u, ok := err.(interface{ Unwrap() error })
        if !ok {
            return false
        }
        err = u.Unwrap()
    }
    return false
}

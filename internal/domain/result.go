package domain

// Result is the single response envelope for every channel operation.
// Exactly one of Data/Error is populated.
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(data any) Result { return Result{Success: true, Data: data} }

func Fail(msg string) Result { return Result{Success: false, Error: msg} }

func FailErr(err error) Result { return Result{Success: false, Error: err.Error()} }

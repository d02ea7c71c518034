package errs

type Code int

const (
	Invalid Code = iota + 1
)

type ErrorDetail struct {
	Code    Code
	Message error
}

// OK reports that validation found nothing wrong.
func (e ErrorDetail) OK() bool {
	return e.Code == 0
}

package submit

import "fmt"

type submitError struct {
	Err error
}

func wrapSubmitError(err error) error {
	if err == nil {
		return nil
	}
	return &submitError{Err: err}
}

func (s *submitError) Error() string {
	return fmt.Sprintf("submit: %v", s.Err)
}

func (s *submitError) Unwrap() error {
	return s.Err
}

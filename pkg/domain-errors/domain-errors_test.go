package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives that every layer relies on
// to carry a user-safe message alongside the logged cause.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeUnauthorized, Message: "Invalid signature"}
		s.Equal("Invalid signature", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeUpstreamFailure}
		s.Equal("upstream_failure", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	s.Run("returns wrapped error", func() {
		inner := errors.New("connection refused")
		err := &Error{Code: CodeInternal, Message: "Failed to save registration details.", Err: inner}
		s.Equal(inner, err.Unwrap())
		s.Equal(inner, errors.Unwrap(err))
	})

	s.Run("returns nil when no wrapped error", func() {
		err := &Error{Code: CodeBadRequest, Message: "invalid request body"}
		s.Nil(err.Unwrap())
	})
}

func (s *DomainErrorsSuite) TestIsMatching() {
	s.Run("matches by code only", func() {
		err1 := &Error{Code: CodeInternal, Message: "a"}
		err2 := &Error{Code: CodeInternal, Message: "b"}
		s.True(err1.Is(err2))
	})

	s.Run("does not match different codes", func() {
		s.False((&Error{Code: CodeInternal}).Is(&Error{Code: CodeTimeout}))
	})

	s.Run("does not match non-domain errors", func() {
		s.False((&Error{Code: CodeInternal}).Is(errors.New("internal_error")))
	})

	s.Run("works with errors.Is through chain", func() {
		inner := &Error{Code: CodeTimeout, Message: "original"}
		wrapped := fmt.Errorf("save: %w", inner)
		s.True(errors.Is(wrapped, &Error{Code: CodeTimeout}))
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("applies code to plain errors", func() {
		err := Wrap(errors.New("boom"), CodeInternal, "Failed to save registration details.")
		s.True(HasCode(err, CodeInternal))
		s.Equal("Failed to save registration details.", err.Error())
	})

	s.Run("preserves original domain code", func() {
		inner := New(CodeTimeout, "deadline")
		err := Wrap(inner, CodeInternal, "outer message")
		s.True(HasCode(err, CodeTimeout))
		s.Equal("outer message", err.Error())
	})
}

func (s *DomainErrorsSuite) TestHasCode() {
	s.False(HasCode(errors.New("plain"), CodeInternal))
	s.False(HasCode(nil, CodeInternal))
	s.True(HasCode(fmt.Errorf("ctx: %w", New(CodeValidation, "x")), CodeValidation))
}

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/cmdmail/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "invalid_thresholds",
			code:    errors.ErrInvalidThresholds,
			message: "keep_lines exceeds max_lines",
			wantStr: "[INVALID_THRESHOLDS] keep_lines exceeds max_lines",
		},
		{
			name:    "config_invalid",
			code:    errors.ErrConfigValid,
			message: "no recipients",
			wantStr: "[CONFIG_INVALID] no recipients",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrInvalidInput, "bad port %d", 70000)
	assert.Equal(t, "bad port 70000", err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("connection refused")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrMailSend, "failed to send")

		require.NotNil(t, err)
		assert.Equal(t, errors.ErrMailSend, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[MAIL_SEND] failed to send: connection refused", err.Error())
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrInvalidThresholds, "bad thresholds").
		WithDetail("max_lines", 10).
		WithDetail("keep_lines", 20)

	assert.Equal(t, 10, err.Details["max_lines"])
	assert.Equal(t, 20, err.Details["keep_lines"])
	assert.Equal(t, err.Details, errors.GetErrorDetails(err))
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrConfigLoad, "error 1")
	err2 := errors.New(errors.ErrConfigLoad, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	assert.True(t, err1.Is(err2))
	assert.False(t, err1.Is(err3))
	assert.True(t, stderrors.Is(err1, err2))
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrCommandStart, "x"), errors.ErrCommandStart, true},
		{"different_code", errors.New(errors.ErrCommandStart, "x"), errors.ErrInternal, false},
		{"wrapped_error", errors.Wrap(stderrors.New("base"), errors.ErrFileWrite, "denied"), errors.ErrFileWrite, true},
		{"standard_error", stderrors.New("standard error"), errors.ErrUnknown, false},
		{"nil_error", nil, errors.ErrUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrInputRead, errors.GetErrorCode(errors.New(errors.ErrInputRead, "eof")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	parseErr := errors.Wrap(rootCause, errors.ErrConfigParse, "cannot parse file")
	loadErr := errors.Wrap(parseErr, errors.ErrConfigLoad, "failed to load config")

	assert.True(t, errors.IsErrorCode(loadErr, errors.ErrConfigLoad))

	var inner *errors.CmdmailError
	require.True(t, stderrors.As(loadErr.Unwrap(), &inner))
	assert.Equal(t, errors.ErrConfigParse, inner.Code)

	assert.True(t, stderrors.Is(loadErr, rootCause))
}

package errors

import (
	stderrors "errors"
	"net/http"
	"strings"
)

// MapError converts a technical error into a user-friendly AppError.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	technicalMessage := err.Error()

	var fetchErr *SourceFetchError
	var validationErr *ValidationError
	var parseErr *ParseError

	switch {
	case stderrors.As(err, &fetchErr):
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgSourceFetch,
			Code:             ErrCodeSourceFetch,
			HTTPStatus:       http.StatusBadGateway,
			OriginalError:    err,
		}
	case stderrors.As(err, &validationErr):
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgValidation,
			Code:             ErrCodeValidation,
			HTTPStatus:       http.StatusBadRequest,
			OriginalError:    err,
			Details:          validationErr.Fields,
		}
	case stderrors.As(err, &parseErr):
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgParse,
			Code:             ErrCodeParse,
			HTTPStatus:       http.StatusUnprocessableEntity,
			OriginalError:    err,
		}
	case strings.Contains(technicalMessage, "database query failed"),
		strings.Contains(technicalMessage, "connection refused"):
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgServiceUnavailable,
			Code:             ErrCodeServiceUnavailable,
			HTTPStatus:       http.StatusServiceUnavailable,
			OriginalError:    err,
		}
	default:
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgInternalError,
			Code:             ErrCodeInternal,
			HTTPStatus:       http.StatusInternalServerError,
			OriginalError:    err,
		}
	}
}

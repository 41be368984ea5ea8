package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"strings"

	t "github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return errors.New("failed to encode json")
	}

	js = append(js, '\n')

	maps.Copy(w.Header(), headers)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

// decodeJSON decodes exactly one JSON value from data into dst.
func decodeJSON(data []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		default:
			return err
		}
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func GetCode(err error) int {
	switch {
	case IsOneOf(err, errMalformedUpload):
		return http.StatusBadRequest
	case IsOneOf(err, t.ErrMissingColumn, t.ErrEmptyDataset, t.ErrUnsupportedFormat, t.ErrInvalidDateRange):
		return http.StatusUnprocessableEntity
	case IsOneOf(err, t.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case IsOneOf(err, t.ErrDatasetNotFound):
		return http.StatusNotFound
	case IsOneOf(err, t.ErrInvalidSession):
		return http.StatusUnauthorized
	case IsOneOf(err, t.ErrSessionMismatch):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func IsOneOf(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// clientMessage hides internal error details behind a generic message.
func clientMessage(err error) string {
	if GetCode(err) == http.StatusInternalServerError {
		return "the server encountered a problem and could not process your request"
	}

	var missing *t.MissingColumnsError
	if errors.As(err, &missing) {
		return missing.Error()
	}
	for _, target := range []error{t.ErrEmptyDataset, t.ErrUnsupportedFormat, t.ErrInvalidDateRange, t.ErrFileTooLarge, t.ErrDatasetNotFound, t.ErrInvalidSession, t.ErrSessionMismatch} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}

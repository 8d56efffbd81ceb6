package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is the value of the "v" field. Clients check it before parsing.
const envelopeVersion = 1

// Envelope wraps every response body.
//
//	{"v":1,"success":true,"data":{...}}
//	{"v":1,"success":false,"error":"...","code":"VALIDATION","message":"...","details":{...}}
type Envelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer is a huma transformer that wraps responses in an Envelope.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	switch body := v.(type) {
	case Envelope, *Envelope:
		return v, nil
	case *APIError:
		return Envelope{
			V:       envelopeVersion,
			Success: false,
			Error:   body.Message,
			Code:    body.Code,
			Message: body.Message,
			Details: body.Details,
		}, nil
	default:
		return Envelope{
			V:       envelopeVersion,
			Success: true,
			Data:    v,
		}, nil
	}
}

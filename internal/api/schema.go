package api

import (
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Schema names for RequestValidator.Validate.
const (
	schemaCredentials   = "credentials"
	schemaCreateMessage = "create_message"
	schemaUpdateMessage = "update_message"
)

const credentialsSchema = `{
	"type": "object",
	"required": ["username", "password"],
	"properties": {
		"username": {"type": "string"},
		"password": {"type": "string"}
	}
}`

const createMessageSchema = `{
	"type": "object",
	"required": ["posted_by", "message_text", "time_posted_epoch"],
	"properties": {
		"posted_by": {"type": "integer"},
		"message_text": {"type": "string"},
		"time_posted_epoch": {"type": "integer"}
	}
}`

const updateMessageSchema = `{
	"type": "object",
	"required": ["message_text"],
	"properties": {
		"message_text": {"type": "string"}
	}
}`

// RequestValidator validates request bodies against pre-compiled JSON schemas.
type RequestValidator struct {
	once    sync.Once
	schemas map[string]*gojsonschema.Schema
	err     error
}

func NewRequestValidator() *RequestValidator { return &RequestValidator{} }

func (v *RequestValidator) load() {
	sources := map[string]string{
		schemaCredentials:   credentialsSchema,
		schemaCreateMessage: createMessageSchema,
		schemaUpdateMessage: updateMessageSchema,
	}
	v.schemas = make(map[string]*gojsonschema.Schema, len(sources))
	for name, raw := range sources {
		s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
		if err != nil {
			v.err = fmt.Errorf("compile schema %s: %w", name, err)
			return
		}
		v.schemas[name] = s
	}
}

func (v *RequestValidator) Validate(name string, body []byte) error {
	v.once.Do(v.load)
	if v.err != nil {
		return v.err
	}
	s, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return err
	}
	if !res.Valid() {
		return fmt.Errorf("request body invalid: %v", res.Errors())
	}
	return nil
}

package api

import "testing"

func TestRequestValidator(t *testing.T) {
	v := NewRequestValidator()

	cases := []struct {
		name    string
		schema  string
		body    string
		wantErr bool
	}{
		{"valid credentials", schemaCredentials, `{"username":"a","password":"b"}`, false},
		{"missing password", schemaCredentials, `{"username":"a"}`, true},
		{"password wrong type", schemaCredentials, `{"username":"a","password":1}`, true},
		{"valid create", schemaCreateMessage, `{"posted_by":1,"message_text":"x","time_posted_epoch":1}`, false},
		{"posted_by as string", schemaCreateMessage, `{"posted_by":"1","message_text":"x","time_posted_epoch":1}`, true},
		{"missing time", schemaCreateMessage, `{"posted_by":1,"message_text":"x"}`, true},
		{"valid update", schemaUpdateMessage, `{"message_text":"x"}`, false},
		{"update missing text", schemaUpdateMessage, `{}`, true},
		{"not json", schemaUpdateMessage, `{`, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.schema, []byte(tc.body))
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}

	if err := v.Validate("nope", []byte(`{}`)); err == nil {
		t.Fatalf("expected error for unknown schema")
	}
}

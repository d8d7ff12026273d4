package httputil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalString_UnmarshalJSON(t *testing.T) {
	type body struct {
		ParentID OptionalString `json:"parentId"`
	}

	tests := []struct {
		name        string
		input       string
		wantPresent bool
		wantValue   *string
	}{
		{"absent", `{}`, false, nil},
		{"null", `{"parentId":null}`, true, nil},
		{"empty", `{"parentId":""}`, true, strPtr("")},
		{"value", `{"parentId":"abc"}`, true, strPtr("abc")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b body
			require.NoError(t, json.Unmarshal([]byte(tt.input), &b))
			assert.Equal(t, tt.wantPresent, b.ParentID.Present)
			assert.Equal(t, tt.wantValue, b.ParentID.Value)
		})
	}
}

func TestOptionalString_Normalized(t *testing.T) {
	assert.Nil(t, Null().Normalized())
	assert.Nil(t, Set("").Normalized())
	assert.Equal(t, "x", *Set("x").Normalized())
}

func TestOptionalString_RejectsNonString(t *testing.T) {
	var o OptionalString
	assert.Error(t, json.Unmarshal([]byte(`42`), &o))
}

func TestEnvelope_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Envelope{Success: true, Fields: map[string]interface{}{"project": map[string]string{"id": "p1"}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"project":{"id":"p1"}}`, string(data))

	data, err = json.Marshal(Envelope{Success: false, Message: "Forbidden"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"Forbidden"}`, string(data))
}

func strPtr(s string) *string { return &s }

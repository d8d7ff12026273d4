package httputil

import (
	"encoding/json"
	"net/http"
)

// RespondJSON writes a JSON response with the given status code.
// It handles encoding errors safely by marshaling first, preventing
// partial responses if encoding fails after headers are sent.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		// Encoding failed - return 500 instead
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// Envelope is the response body shape shared by every endpoint:
// {"success": bool, "message": "...", ...payload fields}
type Envelope struct {
	Success bool
	Message string
	Fields  map[string]interface{}
}

// MarshalJSON flattens payload fields to the top level next to success/message
func (e Envelope) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(e.Fields)+2)
	for k, v := range e.Fields {
		m[k] = v
	}
	m["success"] = e.Success
	if e.Message != "" {
		m["message"] = e.Message
	}
	return json.Marshal(m)
}

// RespondSuccess writes a success envelope carrying a single payload field.
// key may be empty for message-only responses.
func RespondSuccess(w http.ResponseWriter, status int, key string, data interface{}) {
	env := Envelope{Success: true}
	if key != "" {
		env.Fields = map[string]interface{}{key: data}
	}
	RespondJSON(w, status, env)
}

// RespondSuccessWithFields writes a success envelope with several payload fields
func RespondSuccessWithFields(w http.ResponseWriter, status int, message string, fields map[string]interface{}) {
	RespondJSON(w, status, Envelope{Success: true, Message: message, Fields: fields})
}

// RespondError writes a failure envelope
func RespondError(w http.ResponseWriter, status int, message string) {
	payload, err := json.Marshal(Envelope{Success: false, Message: message})
	if err != nil {
		// Fallback to plain text if JSON encoding fails
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"stockroom/internal/domain"
)

const maxBodyBytes = 1 << 20

var errInvalidBody = errors.New("invalid request body")

// productFields is a decoded create/update body. A nil field was absent or null.
type productFields struct {
	Name   *string
	Amount *int
}

// decodeProductFields reads a JSON object body with optional "name" and "amount" keys.
// Keys with the wrong JSON type are reported as violations rather than as a bad body;
// unknown keys (including "id") are ignored.
func decodeProductFields(r *http.Request) (productFields, []domain.Violation, error) {
	var fields productFields

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fields, nil, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return fields, nil, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return fields, nil, fmt.Errorf("%w: %v", errInvalidBody, err)
	}

	var violations []domain.Violation

	if v, ok := raw["name"]; ok && !isNull(v) {
		var name string
		if err := json.Unmarshal(v, &name); err != nil {
			violations = append(violations, domain.NameTypeViolation())
		} else {
			fields.Name = &name
		}
	}

	if v, ok := raw["amount"]; ok && !isNull(v) {
		var amount int
		if err := json.Unmarshal(v, &amount); err != nil {
			violations = append(violations, domain.AmountTypeViolation())
		} else {
			fields.Amount = &amount
		}
	}

	return fields, violations, nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

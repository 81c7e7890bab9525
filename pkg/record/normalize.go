package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const envelopeField = "data"

const userRecordSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "fullName", "email", "phone"],
  "properties": {
    "id": {
      "anyOf": [
        {"type": "string", "minLength": 1},
        {"type": "integer"}
      ]
    },
    "fullName": {"type": "string", "minLength": 1},
    "email": {"type": "string", "minLength": 1},
    "phone": {"type": "string", "minLength": 1}
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	errSchema      error
)

// recordSchema compiles the user record schema on first use.
func recordSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("userrecord.json", strings.NewReader(userRecordSchema)); err != nil {
			errSchema = fmt.Errorf("failed to add user record schema: %w", err)
			return
		}
		compiledSchema, errSchema = compiler.Compile("userrecord.json")
	})
	return compiledSchema, errSchema
}

// Normalize turns a single-record response body into a UserRecord.
// The payload is body.data when that field is present and not null, otherwise
// the body itself.
func Normalize(body []byte) (UserRecord, error) {
	v, err := decode(body)
	if err != nil {
		return UserRecord{}, malformed(-1, "invalid JSON: %v", err)
	}
	if m, ok := v.(map[string]interface{}); ok {
		if data, ok := m[envelopeField]; ok && data != nil {
			v = data
		}
	}
	return toRecord(v, -1)
}

// NormalizeList turns a list response body into user records.
// The payload is body.data; a bare top-level array is also accepted.
func NormalizeList(body []byte) ([]UserRecord, error) {
	v, err := decode(body)
	if err != nil {
		return nil, malformed(-1, "invalid JSON: %v", err)
	}

	var items []interface{}
	switch t := v.(type) {
	case []interface{}:
		items = t
	case map[string]interface{}:
		data, ok := t[envelopeField]
		if !ok || data == nil {
			return nil, malformed(-1, "missing %q array", envelopeField)
		}
		list, ok := data.([]interface{})
		if !ok {
			return nil, malformed(-1, "%q is not an array", envelopeField)
		}
		items = list
	default:
		return nil, malformed(-1, "expected an object or an array")
	}

	records := make([]UserRecord, 0, len(items))
	for i, item := range items {
		rec, err := toRecord(item, i)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func decode(body []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func toRecord(v interface{}, index int) (UserRecord, error) {
	schema, err := recordSchema()
	if err != nil {
		return UserRecord{}, err
	}
	if err := schema.Validate(v); err != nil {
		return UserRecord{}, malformed(index, "%s", describeSchemaError(err))
	}

	// The schema guarantees an object with typed fields.
	m := v.(map[string]interface{})
	rec := UserRecord{
		FullName: m[FieldFullName].(string),
		Email:    m[FieldEmail].(string),
		Phone:    m[FieldPhone].(string),
	}
	switch id := m[FieldID].(type) {
	case string:
		rec.ID = ID(id)
	case json.Number:
		rec.ID = ID(canonicalInteger(id))
	}
	return rec, nil
}

// canonicalInteger renders integral numbers such as 1.0 or 1e2 in plain
// decimal form, so the id can be used as a path segment.
func canonicalInteger(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	var r big.Rat
	if _, ok := r.SetString(n.String()); ok && r.IsInt() {
		return r.Num().String()
	}
	return n.String()
}

// describeSchemaError flattens a schema validation error into its leaf causes.
func describeSchemaError(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	var parts []string
	collectLeaves(ve, &parts)
	if len(parts) == 0 {
		return ve.Message
	}
	return strings.Join(parts, "; ")
}

func collectLeaves(ve *jsonschema.ValidationError, parts *[]string) {
	if len(ve.Causes) == 0 {
		if ve.InstanceLocation == "" {
			*parts = append(*parts, ve.Message)
		} else {
			*parts = append(*parts, strings.TrimPrefix(ve.InstanceLocation, "/")+": "+ve.Message)
		}
		return
	}
	for _, cause := range ve.Causes {
		collectLeaves(cause, parts)
	}
}

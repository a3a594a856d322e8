package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// ToolConfig is one entry of an agent's tool list.
type ToolConfig struct {
	Tool               string   `json:"agentSelectedTool"`
	RequiresHumanInput string   `json:"agentSelectedToolRequiresHumanInput"`
	Config             Settings `json:"agentSelectedToolConfig"`
}

type Setting struct {
	Key   string
	Value string
}

// Settings is a string mapping that keeps its insertion order on the wire.
type Settings []Setting

// Get returns the value stored under key.
func (s Settings) Get(key string) (string, bool) {
	for _, kv := range s {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

func (s Settings) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalString(kv.Key)
		if err != nil {
			return nil, err
		}
		value, err := marshalString(kv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Settings) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid tool settings JSON")
	}
	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return fmt.Errorf("tool settings must be an object, got %s", result.Type)
	}

	out := Settings{}
	var err error
	result.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			err = fmt.Errorf("tool setting %q must be a string", key.String())
			return false
		}
		out = append(out, Setting{Key: key.String(), Value: value.String()})
		return true
	})
	if err != nil {
		return err
	}

	*s = out
	return nil
}

// marshalString encodes v without HTML escaping, matching the document encoder.
func marshalString(v string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

package docstore

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// ToDocument converts a struct with JSON tags into a Document.
func ToDocument(v any) (Document, error) {
	doc, err := normalise(v)
	if err != nil {
		return nil, fmt.Errorf("docstore: encode: %w", err)
	}
	return doc, nil
}

// Decode fills out, a pointer to a struct with JSON tags, from doc. Timestamps
// stored as RFC 3339 text decode into time.Time fields; numbers stored as text
// (or the reverse) are converted.
func Decode(doc Document, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Squash:           true,
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			emptyStringToNilTimeHook(),
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		),
	})
	if err != nil {
		return fmt.Errorf("docstore: decoder: %w", err)
	}
	if err := decoder.Decode(map[string]any(doc)); err != nil {
		return fmt.Errorf("docstore: decode: %w", err)
	}
	return nil
}

// emptyStringToNilTimeHook treats "" as an absent optional timestamp.
func emptyStringToNilTimeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(time.Time{}) {
			return data, nil
		}
		if data.(string) == "" {
			return time.Time{}, nil
		}
		return data, nil
	}
}

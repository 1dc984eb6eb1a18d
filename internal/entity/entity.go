// Package entity holds the primitives shared by every synchronised collection:
// the Indexed constraint, partial entities (Fields) and the codec between them.
package entity

import (
	"maps"
	"math/rand"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/nikmy/fleetsync/pkg/errors"
)

// FieldID is the application name of the identifier field of every entity.
const FieldID = "id"

type Indexed interface {
	GetID() string
}

// Fields is a partial entity keyed by application field names. An absent key
// is undefined, a key holding nil is an explicit null.
type Fields map[string]any

func (f Fields) Clone() Fields {
	if f == nil {
		return Fields{}
	}
	return maps.Clone(f)
}

// WithoutID returns a copy of f with the identifier removed.
func (f Fields) WithoutID() Fields {
	c := f.Clone()
	delete(c, FieldID)
	return c
}

func ToFields[T any](v T) (Fields, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.WrapFail(err, "marshal entity")
	}

	var f Fields
	err = json.Unmarshal(raw, &f)
	if err != nil {
		return nil, errors.WrapFail(err, "unmarshal entity fields")
	}

	return f, nil
}

// FromFields decodes f into T. Keys that T does not declare are ignored.
func FromFields[T any](f Fields) (T, error) {
	var v T

	raw, err := json.Marshal(f)
	if err != nil {
		return v, errors.WrapFail(err, "marshal fields")
	}

	err = json.Unmarshal(raw, &v)
	if err != nil {
		return v, errors.WrapFail(err, "unmarshal fields into entity")
	}

	return v, nil
}

// Merge overwrites the top-level fields of v with the ones present in patch.
// The identifier of v is never replaced.
func Merge[T any](v T, patch Fields) (T, error) {
	f, err := ToFields(v)
	if err != nil {
		return v, err
	}

	id, hasID := f[FieldID]
	for k, val := range patch {
		f[k] = val
	}
	if hasID {
		f[FieldID] = id
	}

	return FromFields[T](f)
}

var lastStamp atomic.Int64

// NewID synthesises a local identifier: a strictly increasing microsecond
// timestamp in hex plus a random two-digit suffix.
func NewID() string {
	randomSuffix := strconv.Itoa(rand.Intn(90) + 10)
	timestamp := strconv.FormatInt(nextStamp(), 16)
	return timestamp + randomSuffix
}

func nextStamp() int64 {
	for {
		now := time.Now().UnixMicro()
		last := lastStamp.Load()
		if now <= last {
			now = last + 1
		}
		if lastStamp.CompareAndSwap(last, now) {
			return now
		}
	}
}

// Package shape translates partial entities between the application's field
// names and the column names of the remote store.
package shape

import (
	"slices"

	"github.com/nikmy/fleetsync/internal/entity"
	"github.com/nikmy/fleetsync/internal/remote"
)

type Transformer interface {
	ToRemote(f entity.Fields) remote.Row
	FromRemote(r remote.Row) entity.Fields
}

// Identity keeps names unchanged in both directions.
var Identity Transformer = identity{}

type identity struct{}

func (identity) ToRemote(f entity.Fields) remote.Row {
	return remote.Row(f.Clone())
}

func (identity) FromRemote(r remote.Row) entity.Fields {
	return entity.Fields(r).Clone()
}

// Mapping renames application fields to remote columns. Fields without an
// entry keep their name. Excluded fields never reach the remote store.
type Mapping struct {
	fields  map[string]string
	columns map[string]string
	exclude []string
}

func NewMapping(fields map[string]string, exclude ...string) *Mapping {
	columns := make(map[string]string, len(fields))
	for app, col := range fields {
		columns[col] = app
	}

	return &Mapping{
		fields:  fields,
		columns: columns,
		exclude: exclude,
	}
}

func (m *Mapping) ToRemote(f entity.Fields) remote.Row {
	row := make(remote.Row, len(f))
	for name, v := range f {
		if slices.Contains(m.exclude, name) {
			continue
		}
		if col, ok := m.fields[name]; ok {
			row[col] = v
			continue
		}
		row[name] = v
	}
	return row
}

func (m *Mapping) FromRemote(r remote.Row) entity.Fields {
	f := make(entity.Fields, len(r))
	for col, v := range r {
		if app, ok := m.columns[col]; ok {
			f[app] = v
			continue
		}
		if _, shadowed := m.fields[col]; shadowed {
			// an application name that is stored under another column
			continue
		}
		f[col] = v
	}
	return f
}

// Column returns the remote name of an application field.
func (m *Mapping) Column(field string) string {
	if col, ok := m.fields[field]; ok {
		return col
	}
	return field
}

// Or returns t, or Identity when t is nil.
func Or(t Transformer) Transformer {
	if t == nil {
		return Identity
	}
	return t
}

package remote

import (
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"
)

func Test_buildInsert(t *testing.T) {
	type testcase struct {
		name     string
		row      Row
		wantSQL  string
		wantArgs []any
	}

	tests := [...]testcase{
		{
			name:    "no columns",
			row:     Row{},
			wantSQL: `INSERT INTO "vehicles" DEFAULT VALUES RETURNING *`,
		},
		{
			name:     "sorted columns",
			row:      Row{"plate": "ABC-123", "brand": "Toyota"},
			wantSQL:  `INSERT INTO "vehicles" ("brand", "plate") VALUES ($1, $2) RETURNING *`,
			wantArgs: []any{"Toyota", "ABC-123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := buildInsert("vehicles", tt.row)
			require.Equal(t, tt.wantSQL, sql)
			require.Equal(t, tt.wantArgs, args)
		})
	}
}

func Test_buildUpdate(t *testing.T) {
	type testcase struct {
		name     string
		row      Row
		wantSQL  string
		wantArgs []any
	}

	tests := [...]testcase{
		{
			name:     "only id falls back to select",
			row:      Row{"id": "7"},
			wantSQL:  `SELECT * FROM "drivers" WHERE "id" = $1`,
			wantArgs: []any{"7"},
		},
		{
			name:     "set columns",
			row:      Row{"phone": "555-1", "name": "Juan", "id": "ignored"},
			wantSQL:  `UPDATE "drivers" SET "name" = $1, "phone" = $2 WHERE "id" = $3 RETURNING *`,
			wantArgs: []any{"Juan", "555-1", "7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := buildUpdate("drivers", "7", tt.row)
			require.Equal(t, tt.wantSQL, sql)
			require.Equal(t, tt.wantArgs, args)
		})
	}
}

func Test_quote(t *testing.T) {
	require.Equal(t, `"weird""name"`, quote(`weird"name`))
}

func Test_normalizeValue(t *testing.T) {
	id := uuid.New()

	type testcase struct {
		name string
		oid  uint32
		in   any
		want any
	}

	tests := [...]testcase{
		{name: "uuid", oid: pgtype.UUIDOID, in: [16]byte(id), want: id.String()},
		{name: "numeric", oid: pgtype.NumericOID, in: pgtype.Numeric{Int: big.NewInt(12345), Exp: -2, Valid: true}, want: 123.45},
		{name: "null numeric", oid: pgtype.NumericOID, in: pgtype.Numeric{}, want: nil},
		{name: "date", oid: pgtype.DateOID, in: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), want: "2024-03-01"},
		{
			name: "timestamp",
			oid:  pgtype.TimestamptzOID,
			in:   time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
			want: "2024-03-01T10:30:00Z",
		},
		{
			name: "timestamp at midnight",
			oid:  pgtype.TimestamptzOID,
			in:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			want: "2024-03-01T00:00:00Z",
		},
		{name: "passthrough", oid: pgtype.TextOID, in: "Toyota", want: "Toyota"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, normalizeValue(tt.oid, tt.in))
		})
	}
}

func Test_normalizeRow(t *testing.T) {
	midnight := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)

	fields := []pgconn.FieldDescription{
		{Name: "id", DataTypeOID: pgtype.TextOID},
		{Name: "period_end", DataTypeOID: pgtype.DateOID},
		{Name: "paid_at", DataTypeOID: pgtype.TimestamptzOID},
	}
	m := map[string]any{"id": "s1", "period_end": midnight, "paid_at": midnight}

	require.Equal(t, Row{
		"id":         "s1",
		"period_end": "2026-10-05",
		"paid_at":    "2026-10-05T00:00:00Z",
	}, normalizeRow(fields, m))
}

package varpath

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryRows_NilDB(t *testing.T) {
	_, err := QueryRows(context.Background(), nil, "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgNilDB)
}

func TestRowSet_Adapter(t *testing.T) {
	rs := &RowSet{
		Columns: []string{"id", "name"},
		Rows: []*Mapping{
			NewMapping().Set("id", Int(1)).Set("name", Text("Claire")),
			NewMapping().Set("id", Int(2)).Set("name", Text("Grant")),
		},
	}
	engine := MustNew()
	ctx := NewContext(nil)
	ctx.Insert("rows", rs.Value())

	assert.Equal(t, 2, rs.Len())
	assert.Equal(t, "Grant", engine.Render(ctx, "rows.1.name"))
	assert.Empty(t, engine.Render(ctx, "rows.2.name"))
	assert.Equal(t, 2, engine.IteratePath(ctx, "rows").Len())
	assert.True(t, engine.ResolvePath(ctx, "rows.0.values").Equal(Sequence(Int(1), Text("Claire"))))

	var empty *RowSet
	assert.Equal(t, 0, empty.Len())
}

func TestColumnValue(t *testing.T) {
	assert.False(t, columnValue(nil).IsValid())
	assert.True(t, columnValue([]byte("abc")).Equal(Text("abc")))
	assert.True(t, columnValue(int64(4)).Equal(Int(4)))
	assert.True(t, columnValue(true).Equal(Bool(true)))
}

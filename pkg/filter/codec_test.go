package filter

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFilters() []Filter {
	return []Filter{
		{ID: "f1", Field: "priority", Operator: OpIsAnyOf, Value: Strings("high", "low"), Type: TypeMultiSelect},
		{ID: "f2", Field: "text", Operator: OpContains, Value: String("bug"), Type: TypeText},
		{ID: "f3", Field: "id", Operator: OpBetween, Value: Pair(10, 20), Type: TypeNumber},
		{ID: "f4", Field: "completed", Operator: OpIsFalse, Value: Null(), Type: TypeBoolean},
		{ID: "f5", Field: "created_at", Operator: OpIsLastNDays, Value: Int(7), Type: TypeDate},
		{ID: "f6", Field: "utm.source", Operator: OpEquals, Value: String("newsletter"), Type: TypeUTM},
		{ID: "f7", Field: "starred", Operator: OpEquals, Value: Bool(true), Type: TypeBoolean},
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	fs := sampleFilters()

	got, err := Parse(Serialize(fs))
	require.NoError(t, err)
	assert.Equal(t, fs, got)
	assert.Equal(t, fs, Deserialize(Serialize(fs)))
}

func TestSerializeKeyOrder(t *testing.T) {
	fs := []Filter{{ID: "f1", Field: "text", Operator: OpContains, Value: String("bug"), Type: TypeText}}

	assert.Equal(t,
		`[{"id":"f1","field":"text","operator":"contains","value":"bug","type":"text"}]`,
		Serialize(fs))
	assert.Equal(t, "[]", Serialize(nil))
}

func TestDeserializeMalformed(t *testing.T) {
	for _, s := range []string{"not json", "{}", "null", "[1,2]", `[{"id":`, `"filters"`} {
		assert.Equal(t, []Filter{}, Deserialize(s), s)

		_, err := Parse(s)
		assert.ErrorIs(t, err, ErrMalformed, s)
	}
	assert.Equal(t, []Filter{}, Deserialize(""))
}

func TestValueOfRevivesNothing(t *testing.T) {
	at := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	v := ValueOf(at)

	s, ok := v.Raw().(string)
	require.True(t, ok)
	assert.Equal(t, "2024-03-15T10:30:00Z", s)

	back := Deserialize(Serialize([]Filter{{Field: "created_at", Operator: OpBefore, Value: v, Type: TypeDate}}))
	require.Len(t, back, 1)
	assert.Equal(t, v, back[0].Value)
}

func TestFromValues(t *testing.T) {
	t.Run("advanced wins over simple", func(t *testing.T) {
		q := url.Values{}
		q.Set(ParamFilters, Serialize(sampleFilters()[:2]))
		q.Set(ParamSearch, "ignored")

		fs, err := FromValues(q)
		require.NoError(t, err)
		assert.Equal(t, sampleFilters()[:2], fs)
	})

	t.Run("malformed advanced degrades to nothing", func(t *testing.T) {
		fs, err := FromValues(url.Values{ParamFilters: {"not json"}})
		assert.ErrorIs(t, err, ErrMalformed)
		assert.Empty(t, fs)
	})

	t.Run("invalid clauses are dropped", func(t *testing.T) {
		fs := []Filter{
			{ID: "ok", Field: "text", Operator: OpContains, Value: String("bug"), Type: TypeText},
			{ID: "bad", Field: "id", Operator: OpBetween, Value: Int(3), Type: TypeNumber},
		}
		got, err := FromValues(url.Values{ParamFilters: {Serialize(fs)}})
		assert.ErrorIs(t, err, ErrInvalidFilter)
		require.Len(t, got, 1)
		assert.Equal(t, "ok", got[0].ID)
	})

	t.Run("simple parameters", func(t *testing.T) {
		q, err := url.ParseQuery("search=bug&status=todo")
		require.NoError(t, err)

		fs, err := FromValues(q)
		require.NoError(t, err)
		require.Len(t, fs, 2)
		assert.Equal(t, FieldText, fs[0].Field)
		assert.Equal(t, FieldStatus, fs[1].Field)
	})
}

package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestDate_JSONAcceptsDateOnlyAndRFC3339(t *testing.T) {
	var j Journey
	require.NoError(t, json.Unmarshal([]byte(`{"startDate":"2023-06-01","endDate":"2023-08-31T12:00:00Z"}`), &j))
	assert.Equal(t, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), j.StartDate.Time)
	require.NotNil(t, j.EndDate)
	assert.Equal(t, 12, j.EndDate.Hour())

	out, err := json.Marshal(j.StartDate)
	require.NoError(t, err)
	assert.JSONEq(t, `"2023-06-01T00:00:00Z"`, string(out))

	require.Error(t, json.Unmarshal([]byte(`{"startDate":"June"}`), &j))
}

func TestDate_NullClearsOptional(t *testing.T) {
	p := Project{EndDate: DatePtr("2024-01-01")}
	require.NoError(t, json.Unmarshal([]byte(`{"endDate":null}`), &p))
	assert.Nil(t, p.EndDate)
}

func TestDate_BSONRoundTrip(t *testing.T) {
	in := Journey{StartDate: MustDate("2020-09-01"), EndDate: DatePtr("2021-01-02")}
	raw, err := bson.Marshal(in)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	_, isDate := doc["startDate"].(bson.DateTime)
	assert.True(t, isDate, "startDate should be stored as a BSON datetime, got %T", doc["startDate"])

	var out Journey
	require.NoError(t, bson.Unmarshal(raw, &out))
	assert.True(t, in.StartDate.Equal(out.StartDate.Time))
	require.NotNil(t, out.EndDate)
	assert.True(t, in.EndDate.Equal(out.EndDate.Time))
}

func TestContactInput_ToContactStampsTransport(t *testing.T) {
	c := ContactInput{Name: "n", Email: "e@x.io", Message: "m"}.ToContact("10.0.0.1", "curl/8")
	assert.Equal(t, "10.0.0.1", c.IPAddress)
	assert.Equal(t, "curl/8", c.UserAgent)
	assert.Empty(t, c.ID)
}

func TestBase_JSONUsesUnderscoreID(t *testing.T) {
	s := NewSkill()
	s.ID = "abc"
	out, err := json.Marshal(s)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Equal(t, "abc", m["_id"])
	assert.EqualValues(t, DefaultSkillLevel, m["level"])
	_, hasV := m["__v"]
	assert.False(t, hasV)
}

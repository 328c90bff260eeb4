package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func rawValue(t *testing.T, v interface{}) bson.RawValue {
	t.Helper()
	typ, data, err := bson.MarshalValue(v)
	require.NoError(t, err)
	return bson.RawValue{Type: typ, Value: data}
}

func TestResolveRecipientsArray(t *testing.T) {
	got, err := ResolveRecipients(rawValue(t, []string{" A@x.com", "b@x.com", "a@X.com ", "nope"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, got)
}

func TestResolveRecipientsArrayIgnoresNonStrings(t *testing.T) {
	got, err := ResolveRecipients(rawValue(t, bson.A{"a@x.com", 42, true}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.com"}, got)
}

func TestResolveRecipientsJSONString(t *testing.T) {
	got, err := ResolveRecipients(rawValue(t, `["c@x.com", "d@x.com", "c@x.com"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"c@x.com", "d@x.com"}, got)
}

func TestResolveRecipientsUnparsableString(t *testing.T) {
	_, err := ResolveRecipients(rawValue(t, `[not json`))
	assert.Error(t, err)
}

func TestResolveRecipientsNoValidEntries(t *testing.T) {
	_, err := ResolveRecipients(rawValue(t, []string{"", "bad", "  "}))
	assert.ErrorIs(t, err, ErrNoRecipients)

	_, err = ResolveRecipients(rawValue(t, `[]`))
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestResolveRecipientsUnsupportedType(t *testing.T) {
	_, err := ResolveRecipients(rawValue(t, int32(7)))
	assert.Error(t, err)

	_, err = ResolveRecipients(bson.RawValue{})
	assert.Error(t, err)
}

package scheduler

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"github.com/linesmerrill/training-calendar-api/validate"
)

// ErrNoRecipients means a training has no usable recipient address.
var ErrNoRecipients = errors.New("no valid recipients")

// ResolveRecipients turns the stored notificationRecipients value into a
// list of distinct lower-cased addresses in first-seen order. The value is
// either a BSON array or a string holding a JSON array. Entries that are not
// strings or not valid addresses are dropped.
func ResolveRecipients(raw bson.RawValue) ([]string, error) {
	var entries []string

	switch raw.Type {
	case bsontype.Array:
		values, err := raw.Array().Values()
		if err != nil {
			return nil, fmt.Errorf("reading recipient array: %w", err)
		}
		for _, v := range values {
			if s, ok := v.StringValueOK(); ok {
				entries = append(entries, s)
			}
		}
	case bsontype.String:
		var decoded []interface{}
		if err := json.Unmarshal([]byte(raw.StringValue()), &decoded); err != nil {
			return nil, fmt.Errorf("parsing recipient list: %w", err)
		}
		for _, v := range decoded {
			if s, ok := v.(string); ok {
				entries = append(entries, s)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported recipient type %s", raw.Type)
	}

	seen := make(map[string]struct{}, len(entries))
	recipients := make([]string, 0, len(entries))
	for _, e := range entries {
		addr := strings.ToLower(strings.TrimSpace(e))
		if !validate.Email(addr) {
			continue
		}
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		recipients = append(recipients, addr)
	}
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}
	return recipients, nil
}

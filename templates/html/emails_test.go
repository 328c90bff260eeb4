package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTrainingDate(t *testing.T) {
	assert.Equal(t, "1/Jan/2025", FormatTrainingDate(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, "23/Nov/2024", FormatTrainingDate(time.Date(2024, 11, 23, 0, 0, 0, 0, time.UTC)))
}

func TestRenderCode(t *testing.T) {
	out := RenderCode("Ann <admin>", "123456", 10*time.Minute)

	assert.Contains(t, out, "123456")
	assert.Contains(t, out, "expires in 10 minutes")
	assert.Contains(t, out, "Ann &lt;admin&gt;")
	assert.NotContains(t, out, "<admin>")
	assert.Contains(t, out, Brand)
}

func TestRenderWelcome(t *testing.T) {
	out := RenderWelcome("Ann", "ann@x.com", 42)

	assert.Contains(t, out, "Welcome aboard, Ann!")
	assert.Contains(t, out, "ann@x.com")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "<title>Welcome to Training Calendar System</title>")
}

func TestRenderTrainingReminder(t *testing.T) {
	at := time.Date(2024, 3, 4, 14, 30, 0, 0, time.UTC)
	out := RenderTrainingReminder("Fire Safety & Drills", at, "Hall B", 2)

	assert.Contains(t, out, "Fire Safety &amp; Drills")
	assert.Contains(t, out, "4/Mar/2024")
	assert.Contains(t, out, "02:30 PM - 04:30 PM")
	assert.Contains(t, out, "Hall B")
	assert.Contains(t, out, "2 hour(s)")
}

func TestRenderTrainingReminderDefaultsDuration(t *testing.T) {
	at := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	out := RenderTrainingReminder("First Aid", at, "Room 1", 0)

	assert.Contains(t, out, "09:00 AM - 10:00 AM")
}

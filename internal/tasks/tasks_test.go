package tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedAutomation(t time.Time) *Automation {
	a := NewAutomation(".")
	a.now = func() time.Time { return t }
	return a
}

func TestTimeFormat(t *testing.T) {
	a := fixedAutomation(time.Date(2026, time.August, 28, 15, 7, 0, 0, time.UTC))
	assert.Equal(t, "03:07 PM", a.Time())

	a = fixedAutomation(time.Date(2026, time.August, 28, 9, 30, 0, 0, time.UTC))
	assert.Equal(t, "09:30 AM", a.Time())
}

func TestDateFormat(t *testing.T) {
	a := fixedAutomation(time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "Friday, August 28, 2026", a.Date())
}

func TestCommonAppsHaveNotepad(t *testing.T) {
	apps := commonApps()
	assert.Contains(t, apps, "notepad")
	assert.Contains(t, apps, "calculator")
}

func TestVolumeUnknownAction(t *testing.T) {
	assert.Error(t, pactlVolume("sideways"))
}

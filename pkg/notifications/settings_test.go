package notifications_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialkit/pkg/notifications"
)

func at(hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		panic(err)
	}
	return t
}

func TestQuietHours_Contains(t *testing.T) {
	t.Parallel()

	overnight := notifications.QuietHours{Enabled: true, StartTime: "22:00", EndTime: "07:00"}
	daytime := notifications.QuietHours{Enabled: true, StartTime: "09:00", EndTime: "17:30"}

	tests := []struct {
		name  string
		hours notifications.QuietHours
		now   string
		want  bool
	}{
		{"overnight before midnight", overnight, "23:30", true},
		{"overnight after midnight", overnight, "05:00", true},
		{"overnight midday", overnight, "12:00", false},
		{"overnight start is inclusive", overnight, "22:00", true},
		{"overnight end is inclusive", overnight, "07:00", true},
		{"overnight just after end", overnight, "07:01", false},
		{"overnight just before start", overnight, "21:59", false},
		{"daytime inside", daytime, "12:00", true},
		{"daytime end inclusive", daytime, "17:30", true},
		{"daytime outside", daytime, "18:00", false},
		{"disabled", notifications.QuietHours{StartTime: "00:00", EndTime: "23:59"}, "12:00", false},
		{"malformed start", notifications.QuietHours{Enabled: true, StartTime: "late", EndTime: "07:00"}, "23:00", false},
		{"out of range end", notifications.QuietHours{Enabled: true, StartTime: "22:00", EndTime: "25:00"}, "23:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.hours.Contains(at(tt.now)))
		})
	}
}

func TestSettings_Enabled(t *testing.T) {
	t.Parallel()

	s := notifications.DefaultSettings()
	for _, typ := range []notifications.Type{
		notifications.TypeMessage, notifications.TypeMention, notifications.TypeFollow,
		notifications.TypeLike, notifications.TypeComment, notifications.TypeCart,
		notifications.TypeProduct, notifications.TypeSystem, "unknown",
	} {
		assert.True(t, s.Enabled(typ), typ)
	}

	s.LikeNotifications = false
	s.SystemNotifications = false
	assert.False(t, s.Enabled(notifications.TypeLike))
	assert.False(t, s.Enabled("unknown"), "unknown types follow the system channel")
	assert.True(t, s.Enabled(notifications.TypeComment))
}

func TestSettings_Apply(t *testing.T) {
	t.Parallel()

	base := notifications.DefaultSettings()
	quiet := notifications.QuietHours{Enabled: true, StartTime: "23:00", EndTime: "06:00"}

	got := base.Apply(notifications.SettingsPatch{
		LikeNotifications: notifications.Bool(false),
		DesktopEnabled:    notifications.Bool(true),
		QuietHours:        &quiet,
	})

	assert.False(t, got.LikeNotifications)
	assert.True(t, got.DesktopEnabled)
	assert.Equal(t, quiet, got.QuietHours)
	assert.True(t, got.MessageNotifications)
	assert.True(t, got.SoundEnabled)

	assert.True(t, base.LikeNotifications, "Apply does not modify the receiver")
	assert.Equal(t, base, base.Apply(notifications.SettingsPatch{}))
}

func TestSettings_JSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(notifications.DefaultSettings())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"messageNotifications": true,
		"mentionNotifications": true,
		"followNotifications": true,
		"likeNotifications": true,
		"commentNotifications": true,
		"productNotifications": true,
		"cartNotifications": true,
		"systemNotifications": true,
		"soundEnabled": true,
		"desktopEnabled": false,
		"quietHours": {"enabled": false, "startTime": "22:00", "endTime": "08:00"}
	}`, string(data))
}

func TestNotification_HidesAutomatically(t *testing.T) {
	t.Parallel()

	assert.True(t, notifications.Notification{}.HidesAutomatically())
	assert.False(t, notifications.Notification{Persistent: true}.HidesAutomatically())
	assert.False(t, notifications.Notification{AutoHide: notifications.Bool(false)}.HidesAutomatically())
	assert.True(t, notifications.Notification{AutoHide: notifications.Bool(true)}.HidesAutomatically())
	assert.Equal(t, 1500*time.Millisecond, notifications.Notification{Duration: 1500}.DisplayDuration())
}

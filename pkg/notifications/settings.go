package notifications

import (
	"fmt"
	"time"
)

// QuietHours is a daily window, in local wall-clock "HH:MM", during which
// toasts, desktop popups and sounds are suppressed.
type QuietHours struct {
	Enabled   bool   `json:"enabled"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Contains reports whether t falls inside the window. Both bounds are
// inclusive at minute precision, and a start later than the end wraps past
// midnight. A disabled or malformed window contains nothing.
func (q QuietHours) Contains(t time.Time) bool {
	if !q.Enabled {
		return false
	}
	start, err := parseClock(q.StartTime)
	if err != nil {
		return false
	}
	end, err := parseClock(q.EndTime)
	if err != nil {
		return false
	}

	now := t.Hour()*60 + t.Minute()
	if start <= end {
		return now >= start && now <= end
	}
	return now >= start || now <= end
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return h*60 + m, nil
}

// Settings holds the per-channel switches and side-channel preferences.
type Settings struct {
	MessageNotifications bool       `json:"messageNotifications"`
	MentionNotifications bool       `json:"mentionNotifications"`
	FollowNotifications  bool       `json:"followNotifications"`
	LikeNotifications    bool       `json:"likeNotifications"`
	CommentNotifications bool       `json:"commentNotifications"`
	ProductNotifications bool       `json:"productNotifications"`
	CartNotifications    bool       `json:"cartNotifications"`
	SystemNotifications  bool       `json:"systemNotifications"`
	SoundEnabled         bool       `json:"soundEnabled"`
	DesktopEnabled       bool       `json:"desktopEnabled"`
	QuietHours           QuietHours `json:"quietHours"`
}

// DefaultSettings enables every channel and sound. Desktop popups and quiet
// hours start off.
func DefaultSettings() Settings {
	return Settings{
		MessageNotifications: true,
		MentionNotifications: true,
		FollowNotifications:  true,
		LikeNotifications:    true,
		CommentNotifications: true,
		ProductNotifications: true,
		CartNotifications:    true,
		SystemNotifications:  true,
		SoundEnabled:         true,
		DesktopEnabled:       false,
		QuietHours: QuietHours{
			Enabled:   false,
			StartTime: "22:00",
			EndTime:   "08:00",
		},
	}
}

// Enabled reports whether the channel for t is switched on. Unknown types
// follow the system channel.
func (s Settings) Enabled(t Type) bool {
	switch t {
	case TypeMessage:
		return s.MessageNotifications
	case TypeMention:
		return s.MentionNotifications
	case TypeFollow:
		return s.FollowNotifications
	case TypeLike:
		return s.LikeNotifications
	case TypeComment:
		return s.CommentNotifications
	case TypeProduct:
		return s.ProductNotifications
	case TypeCart:
		return s.CartNotifications
	default:
		return s.SystemNotifications
	}
}

// SettingsPatch is a partial update. Nil fields are left unchanged;
// QuietHours replaces the whole record when set.
type SettingsPatch struct {
	MessageNotifications *bool       `json:"messageNotifications,omitempty"`
	MentionNotifications *bool       `json:"mentionNotifications,omitempty"`
	FollowNotifications  *bool       `json:"followNotifications,omitempty"`
	LikeNotifications    *bool       `json:"likeNotifications,omitempty"`
	CommentNotifications *bool       `json:"commentNotifications,omitempty"`
	ProductNotifications *bool       `json:"productNotifications,omitempty"`
	CartNotifications    *bool       `json:"cartNotifications,omitempty"`
	SystemNotifications  *bool       `json:"systemNotifications,omitempty"`
	SoundEnabled         *bool       `json:"soundEnabled,omitempty"`
	DesktopEnabled       *bool       `json:"desktopEnabled,omitempty"`
	QuietHours           *QuietHours `json:"quietHours,omitempty"`
}

// Apply returns s with the non-nil fields of p merged in.
func (s Settings) Apply(p SettingsPatch) Settings {
	set := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	set(&s.MessageNotifications, p.MessageNotifications)
	set(&s.MentionNotifications, p.MentionNotifications)
	set(&s.FollowNotifications, p.FollowNotifications)
	set(&s.LikeNotifications, p.LikeNotifications)
	set(&s.CommentNotifications, p.CommentNotifications)
	set(&s.ProductNotifications, p.ProductNotifications)
	set(&s.CartNotifications, p.CartNotifications)
	set(&s.SystemNotifications, p.SystemNotifications)
	set(&s.SoundEnabled, p.SoundEnabled)
	set(&s.DesktopEnabled, p.DesktopEnabled)
	if p.QuietHours != nil {
		s.QuietHours = *p.QuietHours
	}
	return s
}

// Bool returns a pointer to v, for building patches.
func Bool(v bool) *bool {
	return &v
}

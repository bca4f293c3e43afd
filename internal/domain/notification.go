package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Notification validation errors
var (
	// ErrNotificationIDEmpty is returned when a notification ID is nil.
	ErrNotificationIDEmpty = errors.New("notification ID cannot be empty")

	// ErrInvalidNotificationType is returned when a notification type is not
	// one of the recognized values.
	ErrInvalidNotificationType = errors.New("invalid notification type")

	// ErrInvalidNotificationPriority is returned when a priority is not one
	// of the recognized tiers.
	ErrInvalidNotificationPriority = errors.New("invalid notification priority")
)

// NotificationType identifies what triggered a notification.
type NotificationType string

const (
	NotificationTypeTaskUrgent    NotificationType = "task_urgent"
	NotificationTypeStudyReminder NotificationType = "study_reminder"
	NotificationTypeAchievement   NotificationType = "achievement"
)

// IsValid reports whether t is one of the recognized notification types.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeTaskUrgent, NotificationTypeStudyReminder, NotificationTypeAchievement:
		return true
	default:
		return false
	}
}

// NotificationPriority is the urgency tier used to order notifications.
type NotificationPriority string

const (
	NotificationPriorityCritical NotificationPriority = "critical"
	NotificationPriorityHigh     NotificationPriority = "high"
	NotificationPriorityMedium   NotificationPriority = "medium"
	NotificationPriorityLow      NotificationPriority = "low"
)

// IsValid reports whether p is one of the recognized priority tiers.
func (p NotificationPriority) IsValid() bool {
	switch p {
	case NotificationPriorityCritical, NotificationPriorityHigh,
		NotificationPriorityMedium, NotificationPriorityLow:
		return true
	default:
		return false
	}
}

// Rank maps a priority tier to its sort position, critical first.
// Unknown tiers sort last.
func (p NotificationPriority) Rank() int {
	switch p {
	case NotificationPriorityCritical:
		return 0
	case NotificationPriorityHigh:
		return 1
	case NotificationPriorityMedium:
		return 2
	case NotificationPriorityLow:
		return 3
	default:
		return 4
	}
}

// Notification is a message surfaced to a student: an urgent task warning,
// a study reminder, or an achievement. Notifications are computed from
// current task state on each request; only read markers and achievement
// crossings persist. IDs are deterministic so the same underlying event
// always produces the same notification ID across requests.
type Notification struct {
	ID       uuid.UUID            `json:"id"`
	UserID   uuid.UUID            `json:"user_id"`
	Type     NotificationType     `json:"type"`
	Priority NotificationPriority `json:"priority"`
	Title    string               `json:"title"`
	Message  string               `json:"message"`
	Read     bool                 `json:"read"`

	// Extra carries event-specific structured data: the task and days
	// remaining for urgent warnings, achievement metadata, and so on.
	Extra map[string]any `json:"extra"`

	CreatedAt time.Time `json:"created_at"`

	// DeliveredAt is when the feed containing this notification was
	// generated. Feeds are recomputed per request, so it tracks CreatedAt.
	DeliveredAt time.Time `json:"delivered_at"`
}

// Validate checks if the Notification has valid data.
func (n *Notification) Validate() error {
	if n.ID == uuid.Nil {
		return ErrNotificationIDEmpty
	}

	if n.UserID == uuid.Nil {
		return ErrEmptyUserID
	}

	if !n.Type.IsValid() {
		return ErrInvalidNotificationType
	}

	if !n.Priority.IsValid() {
		return ErrInvalidNotificationPriority
	}

	return nil
}

package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// NotificationMarkerStore persists the two pieces of notification state
// that survive between requests: which notification IDs a user has read,
// and which achievement thresholds have already fired. The notifications
// themselves are recomputed from task state on every request.
type NotificationMarkerStore interface {
	// MarkRead records that the user has read the notification.
	// Marking an already read notification is a no-op.
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error

	// ReadIDs retrieves the set of notification IDs the user has read.
	ReadIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error)

	// RecordAchievement marks an achievement threshold as fired for the user.
	// Recording an already fired achievement is a no-op.
	RecordAchievement(ctx context.Context, userID uuid.UUID, achievementID string) error

	// FiredAchievements retrieves the achievement IDs already fired for the
	// user.
	FiredAchievements(ctx context.Context, userID uuid.UUID) (map[string]bool, error)

	// WithTx returns a new NotificationMarkerStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) NotificationMarkerStore
}

package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uniplanner/planner-api/internal/platform/logger"
	"github.com/uniplanner/planner-api/internal/store"
)

// PostgresNotificationMarkerStore implements the store.NotificationMarkerStore
// interface using a PostgreSQL database as the storage backend.
//
// Only markers persist here. The notifications themselves are recomputed from
// task state on every request, so there is no notifications table.
type PostgresNotificationMarkerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresNotificationMarkerStore creates a new PostgreSQL implementation
// of the NotificationMarkerStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresNotificationMarkerStore(
	db store.DBTX,
	logger *slog.Logger,
) *PostgresNotificationMarkerStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresNotificationMarkerStore{
		db:     db,
		logger: logger.With(slog.String("component", "notification_marker_store")),
	}
}

// Ensure PostgresNotificationMarkerStore implements the interface
var _ store.NotificationMarkerStore = (*PostgresNotificationMarkerStore)(nil)

// MarkRead implements store.NotificationMarkerStore.MarkRead
// Marking an already read notification is a no-op.
func (s *PostgresNotificationMarkerStore) MarkRead(
	ctx context.Context,
	userID, notificationID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO notification_reads (user_id, notification_id, read_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, notification_id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query, userID, notificationID, time.Now().UTC())
	if err != nil {
		log.Error("failed to mark notification read",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("notification_id", notificationID.String()))
		return MapError(err)
	}

	log.Debug("read marker stored",
		slog.String("user_id", userID.String()),
		slog.String("notification_id", notificationID.String()))
	return nil
}

// ReadIDs implements store.NotificationMarkerStore.ReadIDs
func (s *PostgresNotificationMarkerStore) ReadIDs(
	ctx context.Context,
	userID uuid.UUID,
) (map[uuid.UUID]bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT notification_id FROM notification_reads WHERE user_id = $1`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query read markers",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	read := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			log.Error("failed to scan read marker",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		read[id] = true
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return read, nil
}

// RecordAchievement implements store.NotificationMarkerStore.RecordAchievement
// Recording an already fired achievement is a no-op.
func (s *PostgresNotificationMarkerStore) RecordAchievement(
	ctx context.Context,
	userID uuid.UUID,
	achievementID string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO achievement_marks (user_id, achievement_id, fired_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, achievement_id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query, userID, achievementID, time.Now().UTC())
	if err != nil {
		log.Error("failed to record achievement",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("achievement_id", achievementID))
		return MapError(err)
	}

	log.Info("achievement marker stored",
		slog.String("user_id", userID.String()),
		slog.String("achievement_id", achievementID))
	return nil
}

// FiredAchievements implements store.NotificationMarkerStore.FiredAchievements
func (s *PostgresNotificationMarkerStore) FiredAchievements(
	ctx context.Context,
	userID uuid.UUID,
) (map[string]bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT achievement_id FROM achievement_marks WHERE user_id = $1`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query achievement markers",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	fired := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			log.Error("failed to scan achievement marker",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		fired[id] = true
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return fired, nil
}

// WithTx implements store.NotificationMarkerStore.WithTx
func (s *PostgresNotificationMarkerStore) WithTx(tx *sql.Tx) store.NotificationMarkerStore {
	return &PostgresNotificationMarkerStore{
		db:     tx,
		logger: s.logger,
	}
}

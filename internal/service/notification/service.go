// Package notification computes a student's notification feed on demand.
// Notifications are derived from current task state on every call; only read
// markers and achievement crossings persist between requests.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uniplanner/planner-api/internal/domain"
	"github.com/uniplanner/planner-api/internal/store"
)

// notificationNamespace seeds the deterministic notification IDs. The same
// underlying event must map to the same ID across requests so read markers
// keep pointing at it.
var notificationNamespace = uuid.MustParse("8a9c1f6e-4b2d-4f37-9c05-2c9ad1f0b7e3")

// AchievementRule declares a completed-task threshold and the notification
// it fires when first crossed.
type AchievementRule struct {
	ID        string
	Threshold int
	Title     string
	Message   string
}

// DefaultAchievementRules returns the built-in achievement ladder, ordered
// by ascending threshold.
func DefaultAchievementRules() []AchievementRule {
	return []AchievementRule{
		{
			ID:        "first_task",
			Threshold: 1,
			Title:     "First task completed",
			Message:   "You completed your first task. Keep it up!",
		},
		{
			ID:        "ten_tasks",
			Threshold: 10,
			Title:     "Ten tasks completed",
			Message:   "Ten tasks done. You are building a solid routine.",
		},
		{
			ID:        "fifty_tasks",
			Threshold: 50,
			Title:     "Fifty tasks completed",
			Message:   "Fifty tasks done. Remarkable consistency!",
		},
	}
}

// AchievementStatus pairs a rule with the user's progress toward it.
type AchievementStatus struct {
	ID        string `json:"id"`
	Threshold int    `json:"threshold"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Unlocked  bool   `json:"unlocked"`
}

// Service defines the notification operations available to the API layer.
type Service interface {
	// Generate computes the user's current notification feed, ordered
	// critical first. It records newly crossed achievement thresholds but
	// never mutates read state.
	Generate(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)

	// UnreadCount reports how many current notifications the user has not
	// read.
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)

	// MarkRead persists a read marker for the notification.
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error

	// Achievements lists every achievement rule with the user's unlock state.
	Achievements(ctx context.Context, userID uuid.UUID) ([]AchievementStatus, error)
}

type serviceImpl struct {
	taskStore        store.TaskStore
	courseStore      store.CourseStore
	markerStore      store.NotificationMarkerStore
	rules            []AchievementRule
	urgentWindowDays int
	logger           *slog.Logger
	timeFunc         func() time.Time
}

// Ensure serviceImpl implements Service.
var _ Service = (*serviceImpl)(nil)

// NewService creates a notification Service with the default achievement
// rules.
func NewService(
	taskStore store.TaskStore,
	courseStore store.CourseStore,
	markerStore store.NotificationMarkerStore,
	urgentWindowDays int,
	logger *slog.Logger,
) Service {
	return &serviceImpl{
		taskStore:        taskStore,
		courseStore:      courseStore,
		markerStore:      markerStore,
		rules:            DefaultAchievementRules(),
		urgentWindowDays: urgentWindowDays,
		logger:           logger.With("component", "notification_service"),
		timeFunc:         time.Now,
	}
}

// Generate computes the feed: urgent-task warnings, one study reminder, and
// achievement notifications for newly crossed thresholds.
func (s *serviceImpl) Generate(
	ctx context.Context,
	userID uuid.UUID,
) ([]domain.Notification, error) {
	now := s.timeFunc()

	tasks, err := s.taskStore.ListByUser(ctx, userID, store.TaskFilter{})
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	notifications := make([]domain.Notification, 0)

	urgent := s.urgentNotifications(userID, tasks, now)
	notifications = append(notifications, urgent...)

	reminder, err := s.studyReminder(ctx, userID, tasks, now)
	if err != nil {
		return nil, err
	}
	if reminder != nil {
		notifications = append(notifications, *reminder)
	}

	achievements, err := s.achievementNotifications(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	notifications = append(notifications, achievements...)

	readIDs, err := s.markerStore.ReadIDs(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load read markers",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to load read markers: %w", err)
	}
	for i := range notifications {
		notifications[i].Read = readIDs[notifications[i].ID]
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].Priority.Rank() < notifications[j].Priority.Rank()
	})

	s.logger.Debug("generated notifications",
		"user_id", userID,
		"count", len(notifications))

	return notifications, nil
}

// urgentNotifications builds one warning per incomplete task due within the
// urgent window, overdue tasks included.
func (s *serviceImpl) urgentNotifications(
	userID uuid.UUID,
	tasks []domain.Task,
	now time.Time,
) []domain.Notification {
	urgent := make([]domain.Notification, 0)
	for _, task := range tasks {
		if task.Completed {
			continue
		}

		daysLeft := int(task.DueAt.Sub(now).Hours() / 24)
		if daysLeft > s.urgentWindowDays {
			continue
		}

		priority := domain.NotificationPriorityMedium
		switch {
		case daysLeft <= 1:
			priority = domain.NotificationPriorityCritical
		case daysLeft <= 3:
			priority = domain.NotificationPriorityHigh
		}

		var message string
		switch {
		case task.DueAt.Before(now):
			message = fmt.Sprintf("%q is overdue", task.Title)
		case daysLeft == 0:
			message = fmt.Sprintf("%q is due today", task.Title)
		case daysLeft == 1:
			message = fmt.Sprintf("%q is due tomorrow", task.Title)
		default:
			message = fmt.Sprintf("%q is due in %d days", task.Title, daysLeft)
		}

		urgent = append(urgent, domain.Notification{
			ID:       deterministicID("task_urgent", task.ID.String()),
			UserID:   userID,
			Type:     domain.NotificationTypeTaskUrgent,
			Priority: priority,
			Title:    "Urgent task",
			Message:  message,
			Extra: map[string]any{
				"task_id":        task.ID.String(),
				"course_code":    task.CourseCode,
				"days_remaining": daysLeft,
			},
			CreatedAt:   now,
			DeliveredAt: now,
		})
	}
	return urgent
}

// studyReminder builds at most one reminder naming up to three courses with
// pending tasks, in due-date order.
func (s *serviceImpl) studyReminder(
	ctx context.Context,
	userID uuid.UUID,
	tasks []domain.Task,
	now time.Time,
) (*domain.Notification, error) {
	codes := make([]string, 0)
	seen := make(map[string]struct{})
	for _, task := range tasks {
		if task.Completed {
			continue
		}
		if _, ok := seen[task.CourseCode]; ok {
			continue
		}
		seen[task.CourseCode] = struct{}{}
		codes = append(codes, task.CourseCode)
	}
	if len(codes) == 0 {
		return nil, nil
	}

	byCode, err := s.courseStore.GetByCodes(ctx, codes)
	if err != nil {
		s.logger.Error("failed to resolve reminder courses",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to resolve courses: %w", err)
	}

	names := make([]string, 0, 3)
	for _, code := range codes {
		if len(names) == 3 {
			break
		}
		if course, ok := byCode[code]; ok {
			names = append(names, course.Name)
		} else {
			names = append(names, code)
		}
	}

	return &domain.Notification{
		ID:       deterministicID("study_reminder", userID.String(), now.Format("2006-01-02")),
		UserID:   userID,
		Type:     domain.NotificationTypeStudyReminder,
		Priority: domain.NotificationPriorityMedium,
		Title:    "Study reminder",
		Message:  fmt.Sprintf("You have pending tasks in: %s", strings.Join(names, ", ")),
		Extra: map[string]any{
			"courses": names,
		},
		CreatedAt:   now,
		DeliveredAt: now,
	}, nil
}

// achievementNotifications fires rules whose threshold the completed-task
// count has crossed for the first time, recording the crossing so the same
// achievement is never announced twice.
func (s *serviceImpl) achievementNotifications(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) ([]domain.Notification, error) {
	completed, err := s.taskStore.CountCompleted(ctx, userID)
	if err != nil {
		s.logger.Error("failed to count completed tasks",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	fired, err := s.markerStore.FiredAchievements(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load achievement markers",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to load achievement markers: %w", err)
	}

	notifications := make([]domain.Notification, 0)
	for _, rule := range s.rules {
		if completed < rule.Threshold || fired[rule.ID] {
			continue
		}

		if err := s.markerStore.RecordAchievement(ctx, userID, rule.ID); err != nil {
			s.logger.Error("failed to record achievement",
				"error", err,
				"user_id", userID,
				"achievement_id", rule.ID)
			return nil, fmt.Errorf("failed to record achievement: %w", err)
		}

		notifications = append(notifications, domain.Notification{
			ID:       deterministicID("achievement", userID.String(), rule.ID),
			UserID:   userID,
			Type:     domain.NotificationTypeAchievement,
			Priority: domain.NotificationPriorityLow,
			Title:    rule.Title,
			Message:  rule.Message,
			Extra: map[string]any{
				"achievement_id":  rule.ID,
				"threshold":       rule.Threshold,
				"completed_tasks": completed,
			},
			CreatedAt:   now,
			DeliveredAt: now,
		})

		s.logger.Info("achievement unlocked",
			"user_id", userID,
			"achievement_id", rule.ID,
			"completed_tasks", completed)
	}

	return notifications, nil
}

// UnreadCount counts the notifications in the current feed without a read
// marker.
func (s *serviceImpl) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	notifications, err := s.Generate(ctx, userID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, n := range notifications {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkRead persists a read marker for the notification.
func (s *serviceImpl) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if err := s.markerStore.MarkRead(ctx, userID, notificationID); err != nil {
		s.logger.Error("failed to mark notification read",
			"error", err,
			"user_id", userID,
			"notification_id", notificationID)
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	s.logger.Debug("notification marked read",
		"user_id", userID,
		"notification_id", notificationID)

	return nil
}

// Achievements lists every rule with the user's unlock state, derived from
// the completed-task count rather than the fired markers so progress shows
// even before the feed has been generated.
func (s *serviceImpl) Achievements(
	ctx context.Context,
	userID uuid.UUID,
) ([]AchievementStatus, error) {
	completed, err := s.taskStore.CountCompleted(ctx, userID)
	if err != nil {
		s.logger.Error("failed to count completed tasks",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	statuses := make([]AchievementStatus, 0, len(s.rules))
	for _, rule := range s.rules {
		statuses = append(statuses, AchievementStatus{
			ID:        rule.ID,
			Threshold: rule.Threshold,
			Title:     rule.Title,
			Message:   rule.Message,
			Unlocked:  completed >= rule.Threshold,
		})
	}
	return statuses, nil
}

// deterministicID derives a stable UUID for an event from its identifying
// parts.
func deterministicID(parts ...string) uuid.UUID {
	return uuid.NewSHA1(notificationNamespace, []byte(strings.Join(parts, ":")))
}

package workers

import (
	"context"
	"time"

	"ume_backend/internal/logger"
	"ume_backend/internal/models"

	"gorm.io/gorm"
)

const tokenSweepInterval = 24 * time.Hour

// TokenWorker периодически отзывает сессии заблокированных и удаленных
// пользователей. Строки токенов не удаляются, снимается только флаг
// is_active: история выданных токенов сохраняется.
type TokenWorker struct {
	db *gorm.DB
}

func NewTokenWorker(db *gorm.DB) *TokenWorker {
	return &TokenWorker{db: db}
}

// Start запускает фоновый отзыв
func (w *TokenWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *TokenWorker) run(ctx context.Context) {
	ticker := time.NewTicker(tokenSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Token worker stopped")
			return
		case <-ticker.C:
			revoked, err := w.Sweep()
			if err != nil {
				logger.Error("Error revoking stale sessions", "error", err)
			} else if revoked > 0 {
				logger.Info("Revoked stale sessions", "count", revoked)
			}
		}
	}
}

// Sweep снимает флаг активности с токенов пользователей в статусах
// banned и deleted. Возвращает количество отозванных токенов.
func (w *TokenWorker) Sweep() (int64, error) {
	result := w.db.Exec(`
		UPDATE auth_tokens
		SET is_active = false
		WHERE is_active = true
		AND user_id IN (SELECT id FROM users WHERE status IN (?, ?))
	`, models.StatusBanned, models.StatusDeleted)
	return result.RowsAffected, result.Error
}

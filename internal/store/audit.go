package store

import (
	"context"
	"fmt"

	"user-directory/internal/database"
)

// InsertAuditEvent 寫入一筆稽核紀錄。
func InsertAuditEvent(ctx context.Context, db database.DB, actorID int, action string, targetID int) error {
	_, err := db.Exec(ctx,
		`INSERT INTO audit_log (actor_id, action, target_id)
		 VALUES ($1, $2, $3)`,
		actorID,
		action,
		targetID,
	)
	if err != nil {
		return fmt.Errorf("InsertAuditEvent: %w", err)
	}
	return nil
}

package repositories

import (
	"context"

	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
)

type AdminAuditLogRepository interface {
	Create(ctx context.Context, logEntry *models.AdminAuditLog) error
	ListRecent(ctx context.Context, limit int) ([]*models.AdminAuditLog, error)
}

type adminAuditLogRepo struct {
	db DB
}

func NewAdminAuditLogRepository(db DB) AdminAuditLogRepository {
	return &adminAuditLogRepo{db: db}
}

func (r *adminAuditLogRepo) Create(ctx context.Context, logEntry *models.AdminAuditLog) error {
	q := `
        INSERT INTO admin_audit_logs (
            id, admin_id, action, target_id, target_type, details, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, NOW())
    `
	_, err := r.db.Exec(ctx, q,
		logEntry.ID,
		logEntry.AdminID,
		string(logEntry.Action),
		logEntry.TargetID,
		string(logEntry.TargetType),
		[]byte(logEntry.Details),
	)
	return err
}

func (r *adminAuditLogRepo) ListRecent(ctx context.Context, limit int) ([]*models.AdminAuditLog, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, admin_id, action, target_id, target_type, details, created_at
        FROM admin_audit_logs
        ORDER BY created_at DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.AdminAuditLog{}
	for rows.Next() {
		var (
			l              models.AdminAuditLog
			action, target string
			details        []byte
		)
		if err := rows.Scan(&l.ID, &l.AdminID, &action, &l.TargetID, &target, &details, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.Action = models.AuditAction(action)
		l.TargetType = models.AuditTargetType(target)
		l.Details = details
		out = append(out, &l)
	}
	return out, rows.Err()
}

package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/dtos"
	internal_utils "github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/utils"
	shared "github.com/road2tec/girha-setu-sub000/backend/shared/go-dtos"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-repositories"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

const defaultAuditLogLimit = 100

// AdminService holds the moderation workflows. Every mutating action writes
// an audit log entry.
type AdminService struct {
	users    repositories.UserRepository
	flats    repositories.FlatRepository
	bookings repositories.BookingRepository
	audit    repositories.AdminAuditLogRepository
	flatSvc  *FlatService
	notifier *NotificationService
}

func NewAdminService(
	users repositories.UserRepository,
	flats repositories.FlatRepository,
	bookings repositories.BookingRepository,
	audit repositories.AdminAuditLogRepository,
	flatSvc *FlatService,
	notifier *NotificationService,
) *AdminService {
	return &AdminService{
		users:    users,
		flats:    flats,
		bookings: bookings,
		audit:    audit,
		flatSvc:  flatSvc,
		notifier: notifier,
	}
}

func (s *AdminService) logAudit(
	ctx context.Context,
	adminID uuid.UUID,
	action models.AuditAction,
	targetID uuid.UUID,
	targetType models.AuditTargetType,
	details any,
) {
	var raw json.RawMessage
	if details != nil {
		b, err := json.Marshal(details)
		if err != nil {
			utils.Logger.WithError(err).Error("Failed to marshal audit details")
		} else {
			raw = b
		}
	}
	entry := &models.AdminAuditLog{
		ID:         uuid.New(),
		AdminID:    adminID,
		Action:     action,
		TargetID:   targetID,
		TargetType: targetType,
		Details:    raw,
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		utils.Logger.WithError(err).WithField("action", action).Error("Failed to write audit log")
	}
}

func (s *AdminService) PendingOwners(ctx context.Context) (*dtos.PendingOwnersResponse, error) {
	owners, err := s.users.ListPendingOwners(ctx)
	if err != nil {
		return nil, utils.NewInternal("Failed to load pending owners", err)
	}
	out := make([]*shared.UserSummary, 0, len(owners))
	for _, o := range owners {
		out = append(out, shared.NewUserSummary(o))
	}
	return &dtos.PendingOwnersResponse{Owners: out}, nil
}

// ApproveOwner lets the owner start listing flats.
func (s *AdminService) ApproveOwner(ctx context.Context, adminID, ownerID uuid.UUID) (*shared.UserSummary, error) {
	var approved *models.User
	err := s.users.UpdateWithRetry(ctx, ownerID, func(u *models.User) error {
		if !u.Role.RequiresApproval() {
			return internal_utils.ErrInvalidTransition
		}
		u.IsAdminApproved = true
		approved = u
		return nil
	})
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, utils.NewNotFound("User not found", internal_utils.ErrNotFound)
	case errors.Is(err, internal_utils.ErrInvalidTransition):
		return nil, utils.NewBadRequest(utils.ErrCodeValidation, "User does not require approval", err)
	case errors.Is(err, utils.ErrRowVersionConflict):
		return nil, utils.NewConflict(utils.ErrCodeRowVersionConflict, "User was modified concurrently", nil, err)
	case err != nil:
		return nil, utils.NewInternal("Failed to approve owner", err)
	}

	s.logAudit(ctx, adminID, models.AuditApprove, ownerID, models.TargetUser, map[string]string{"role": string(approved.Role)})
	if err := s.notifier.NotifyUser(ctx, ownerID, models.NotificationAdminMessage, nil,
		"Your account has been approved. You can now list flats."); err != nil {
		utils.Logger.WithError(err).Warn("Failed to notify approved owner")
	}
	return shared.NewUserSummary(approved), nil
}

func (s *AdminService) DeleteFlat(ctx context.Context, adminID, flatID uuid.UUID) error {
	flat, err := s.flatSvc.loadFlat(ctx, flatID)
	if err != nil {
		return err
	}
	if err := s.flatSvc.remove(ctx, flat); err != nil {
		return err
	}
	s.logAudit(ctx, adminID, models.AuditDelete, flatID, models.TargetFlat, map[string]string{"title": flat.Title})
	return nil
}

// Broadcast sends an Admin Message to every user.
func (s *AdminService) Broadcast(ctx context.Context, adminID uuid.UUID, msg string) (*dtos.BroadcastResponse, error) {
	n, delivered, err := s.notifier.BroadcastAdminMessage(ctx, msg)
	if err != nil {
		return nil, utils.NewInternal("Failed to broadcast message", err)
	}
	s.logAudit(ctx, adminID, models.AuditBroadcast, n.ID, models.TargetNotification, map[string]int64{"delivered": delivered})
	return &dtos.BroadcastResponse{Message: "Broadcast sent", Delivered: delivered}, nil
}

func (s *AdminService) Stats(ctx context.Context) (*dtos.StatsResponse, error) {
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, utils.NewInternal("Failed to load stats", err)
	}
	flats, err := s.flats.Count(ctx)
	if err != nil {
		return nil, utils.NewInternal("Failed to load stats", err)
	}
	byStatus, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, utils.NewInternal("Failed to load stats", err)
	}
	return &dtos.StatsResponse{UsersByRole: byRole, Flats: flats, BookingsByPayment: byStatus}, nil
}

func (s *AdminService) AuditLogs(ctx context.Context, limit int) (*dtos.AuditLogsResponse, error) {
	if limit <= 0 {
		limit = defaultAuditLogLimit
	}
	logs, err := s.audit.ListRecent(ctx, limit)
	if err != nil {
		return nil, utils.NewInternal("Failed to load audit logs", err)
	}
	if logs == nil {
		logs = []*models.AdminAuditLog{}
	}
	return &dtos.AuditLogsResponse{Logs: logs}, nil
}

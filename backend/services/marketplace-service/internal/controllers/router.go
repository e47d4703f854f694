package controllers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/routes"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-middleware"
)

// Handlers groups every controller the router mounts.
type Handlers struct {
	Health        *HealthController
	Booking       *BookingController
	StripeWebhook *StripeWebhookController
	Notification  *NotificationController
	Wishlist      *WishlistController
	Chat          *ChatController
	Flat          *FlatController
	Admin         *AdminController
	Assistant     *AssistantController
}

// NewRouter mounts public, optional-auth, authenticated and admin routes.
func NewRouter(jwtSecret []byte, h Handlers) *mux.Router {
	router := mux.NewRouter()

	// Public routes
	router.HandleFunc(routes.Health, h.Health.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.StripeWebhook, h.StripeWebhook.WebhookHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.Flats, h.Flat.ListFlatsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.FlatByID, h.Flat.GetFlatHandler).Methods(http.MethodGet)

	// Optional auth: body carries the acting user, a token (if any) must match it
	optional := router.NewRoute().Subrouter()
	optional.Use(middleware.OptionalAuthMiddleware(jwtSecret))
	optional.HandleFunc(routes.BookingsAdd, h.Booking.CreateBookingHandler).Methods(http.MethodPost)
	optional.HandleFunc(routes.WishlistAdd, h.Wishlist.AddHandler).Methods(http.MethodPost)
	optional.HandleFunc(routes.WishlistRemove, h.Wishlist.RemoveHandler).Methods(http.MethodPost)
	optional.HandleFunc(routes.Chat, h.Chat.StartChatHandler).Methods(http.MethodPost)
	optional.HandleFunc(routes.ChatSendMessage, h.Chat.SendMessageHandler).Methods(http.MethodPut)
	optional.HandleFunc(routes.AssistantChat, h.Assistant.ChatHandler).Methods(http.MethodPost)

	// Authenticated routes
	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(jwtSecret))
	secured.HandleFunc(routes.BookingsList, h.Booking.ListBookingsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Notifications, h.Notification.ListNotificationsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.NotificationDelete, h.Notification.DeleteNotificationHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.Wishlist, h.Wishlist.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Chats, h.Chat.ListChatsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ChatByID, h.Chat.GetChatHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Flats, h.Flat.CreateFlatHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.FlatByID, h.Flat.UpdateFlatHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.FlatByID, h.Flat.DeleteFlatHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.FlatRatings, h.Flat.RateFlatHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.FlatImages, h.Flat.UploadImageHandler).Methods(http.MethodPost)

	// Admin routes
	admin := router.NewRoute().Subrouter()
	admin.Use(middleware.AdminAuthMiddleware(jwtSecret))
	admin.HandleFunc(routes.AdminPendingOwners, h.Admin.PendingOwnersHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminApproveOwner, h.Admin.ApproveOwnerHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminDeleteFlat, h.Admin.DeleteFlatHandler).Methods(http.MethodDelete)
	admin.HandleFunc(routes.AdminBroadcast, h.Admin.BroadcastHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminStats, h.Admin.StatsHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminAuditLogs, h.Admin.AuditLogsHandler).Methods(http.MethodGet)

	return router
}

package routes

const (
	// Health
	Health = "/health"

	// Bookings
	BookingsAdd  = "/api/bookings/add"
	BookingsList = "/api/bookings/getBookings"

	// Payments
	StripeWebhook = "/api/payments/stripe/webhook"

	// Notifications
	Notifications      = "/api/notifications"
	NotificationDelete = "/api/notifications/delete"

	// Wishlist
	Wishlist       = "/api/wishlist"
	WishlistAdd    = "/api/wishlist/add"
	WishlistRemove = "/api/wishlist/remove"

	// Chat
	Chat            = "/api/chat"
	ChatSendMessage = "/api/chat/send-message"
	ChatByID        = "/api/chat/{id}"
	Chats           = "/api/chats"

	// Flats
	Flats       = "/api/flats"
	FlatByID    = "/api/flats/{id}"
	FlatRatings = "/api/flats/{id}/ratings"
	FlatImages  = "/api/flats/{id}/images"

	// Admin
	AdminPendingOwners = "/api/admin/owners/pending"
	AdminApproveOwner  = "/api/admin/owners/{id}/approve"
	AdminDeleteFlat    = "/api/admin/flats/{id}"
	AdminBroadcast     = "/api/admin/broadcast"
	AdminStats         = "/api/admin/stats"
	AdminAuditLogs     = "/api/admin/audit-logs"

	// Assistant
	AssistantChat = "/api/assistant/chat"
)

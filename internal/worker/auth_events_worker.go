package worker

import (
	"github.com/spec-kit/marketplace-auth/internal/service"
)

// StartAuthEventWorkers registers the event subscribers that react to auth
// activity.
func StartAuthEventWorkers(notifications *service.NotificationService, activity *service.ActivityService) {
	if notifications != nil {
		notifications.RegisterHandlers()
	}
	if activity != nil {
		activity.RegisterHandlers()
	}
}

// Package notify renders user-facing notification text for lifecycle
// events. Pure string templating; storage and delivery belong to callers.
package notify

import (
	"fmt"

	"github.com/kltransit/lostfound/src/shared/models"
)

// Content is a rendered notification body.
type Content struct {
	Title   string
	Message string
}

// MatchFound announces a probable pairing for an item.
func MatchFound(itemTitle string, score int) Content {
	return Content{
		Title:   "Possible match found",
		Message: fmt.Sprintf("We found a possible match for %q (%d%% compatibility). Staff will review it shortly.", itemTitle, score),
	}
}

// ClaimStatusChanged announces a claim moving to a new status. The reason is
// included only for rejections.
func ClaimStatusChanged(status models.ClaimStatus, itemTitle, reason string) Content {
	switch status {
	case models.ClaimStatusApproved:
		return Content{
			Title:   "Claim approved",
			Message: fmt.Sprintf("Your claim for %q has been approved. Please collect the item at the station counter.", itemTitle),
		}
	case models.ClaimStatusRejected:
		msg := fmt.Sprintf("Your claim for %q has been rejected.", itemTitle)
		if reason != "" {
			msg = fmt.Sprintf("%s Reason: %s", msg, reason)
		}
		return Content{Title: "Claim rejected", Message: msg}
	case models.ClaimStatusTriage:
		return Content{
			Title:   "Claim under review",
			Message: fmt.Sprintf("Your claim for %q is being reviewed by staff.", itemTitle),
		}
	case models.ClaimStatusChat:
		return Content{
			Title:   "Verification required",
			Message: fmt.Sprintf("Staff need more details about your claim for %q. Please reply in the verification thread.", itemTitle),
		}
	default:
		return Content{
			Title:   "Claim updated",
			Message: fmt.Sprintf("Your claim for %q is now %s.", itemTitle, status),
		}
	}
}

// TicketReply announces a staff reply on a support ticket.
func TicketReply(subject string) Content {
	return Content{
		Title:   "New reply on your ticket",
		Message: fmt.Sprintf("Staff replied on %q. Open the ticket to continue the conversation.", subject),
	}
}

package domain

// Action enumerates the operations a user may attempt on contacts.
type Action string

const (
	ActionViewAny Action = "view_any"
	ActionCreate  Action = "create"
	ActionView    Action = "view"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
)

// Allow is the authorization policy for contacts. ViewAny and Create have no
// target and are open to any authenticated user. View, Update and Delete
// require the actor to own the target contact.
func Allow(action Action, actorID string, target *Contact) bool {
	if actorID == "" {
		return false
	}
	switch action {
	case ActionViewAny, ActionCreate:
		return true
	case ActionView, ActionUpdate, ActionDelete:
		return target != nil && target.OwnedBy(actorID)
	default:
		return false
	}
}

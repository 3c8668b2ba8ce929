package model

// ConversationState names the multi-step flow a user is currently in.
// The empty value means idle. Any other value not listed here is treated
// as corrupt by the router and reset to idle.
type ConversationState string

const (
	StateIdle               ConversationState = ""
	StateSearchWaitingQuery ConversationState = "search_waiting_query"
	StateAdminForcedAdd     ConversationState = "admin_forced_add"
	StateAdminForcedRemove  ConversationState = "admin_forced_remove"
	StateAdminAdminsAdd     ConversationState = "admin_admins_add"
	StateAdminAdminsRemove  ConversationState = "admin_admins_remove"
	StateBroadcastWaiting   ConversationState = "broadcast_waiting_text"
)

// Known reports whether s is a member of the closed state set.
func (s ConversationState) Known() bool {
	switch s {
	case StateIdle, StateSearchWaitingQuery,
		StateAdminForcedAdd, StateAdminForcedRemove,
		StateAdminAdminsAdd, StateAdminAdminsRemove,
		StateBroadcastWaiting:
		return true
	}
	return false
}

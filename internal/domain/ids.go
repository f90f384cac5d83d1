package domain

// UserID identifies the calendar owner. We model it as an opaque identifier:
// its format is controlled by the auth layer.
type UserID string

// FriendID identifies a friend referenced from a slot's partners list.
// The values "create", "suggest" and "alone" are reserved sentinels used by
// the planning UI rather than real friend records.
type FriendID string

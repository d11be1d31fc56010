package domain

// CanDeletePost reports whether identity may delete a post owned by ownerID.
// The owner may always delete their own post; an admin may delete anyone's.
func CanDeletePost(ownerID int64, identity Identity) bool {
	return identity.UserID == ownerID || identity.Role == RoleAdmin
}

// CanModifyOwned reports whether identity may mutate a resource owned by
// ownerID when no admin override applies (post updates, comment mutations).
func CanModifyOwned(ownerID int64, identity Identity) bool {
	return identity.UserID == ownerID
}

package model

import "time"

// User holds the profile data kept locally for an auth account (outside of firebase)
type User struct {
	Id        string    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email,omitempty"`
	AvatarUrl string    `db:"avatar_url" json:"avatarUrl,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// DeletedUsername is shown in the author position when the profile row no longer exists
const DeletedUsername = "Deleted User"

type UserWithFollowStatus struct {
	*User
	IsFollowing bool `json:"isFollowing"`
}

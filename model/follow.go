package model

type Follow struct {
	FollowerId  string `db:"follower_id" json:"followerId"`
	FollowingId string `db:"following_id" json:"followingId"`
}

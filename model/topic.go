package model

type Topic struct {
	Id   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type TopicWithCount struct {
	*Topic
	Count int `json:"count"`
}

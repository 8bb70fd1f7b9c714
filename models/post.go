package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a single feed entry. Likes holds user identifiers and behaves as a
// set: membership is flipped by the like toggle, never duplicated by it.
type Post struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Content  string             `bson:"content" json:"content"`
	Image    string             `bson:"image,omitempty" json:"image,omitempty"`
	Avatar   string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Date     time.Time          `bson:"date" json:"date"`
	Likes    []string           `bson:"likes" json:"likes"`
	Comments []Comment          `bson:"comments" json:"comments"`
}

// Comment is immutable once appended to a post; there is no update or delete
// path for individual comments.
type Comment struct {
	ID   string    `bson:"id" json:"id"`
	Text string    `bson:"text" json:"text"`
	User string    `bson:"user" json:"user"`
	Date time.Time `bson:"date" json:"date"`
}

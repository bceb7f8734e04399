package functional

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fixture is the data one scenario works with. Every value carries a fresh
// suffix, so scenarios never see each other's threads.
type Fixture struct {
	Board          string
	ThreadText     string
	ThreadPassword string
	ReplyText      string
	ReplyPassword  string
	WrongPassword  string
}

func NewFixture(boardPrefix string) Fixture {
	suffix := primitive.NewObjectID().Hex()
	return Fixture{
		Board:          boardPrefix + "_" + suffix,
		ThreadText:     "thread: " + suffix,
		ThreadPassword: "thread_pw_" + suffix,
		ReplyText:      "hey " + suffix,
		ReplyPassword:  "reply_pw_" + suffix,
		WrongPassword:  "incorrect_pw_" + suffix,
	}
}

package models

import "time"

// Log is the shape of entries written to the "logs" collection by the
// async zap sink.
type Log struct {
	Message      string    `bson:"message" json:"message"`
	Path         string    `bson:"path,omitempty" json:"path,omitempty"`
	Caller       string    `bson:"caller,omitempty" json:"caller,omitempty"`
	LogLevelId   int       `bson:"log_level_id" json:"log_level_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc" json:"created_on_utc"`
}

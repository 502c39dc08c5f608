package entity

import "time"

type Note struct {
	Id        int64
	Content   string
	CreatedAt time.Time
}

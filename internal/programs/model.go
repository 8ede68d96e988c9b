package programs

import "time"

type Program struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Category    string    `bson:"category" json:"category"`
	Description string    `bson:"description" json:"description"`
	Image       string    `bson:"image" json:"image"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

type ListFilter struct {
	Category string
}

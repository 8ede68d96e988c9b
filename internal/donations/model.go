package donations

import "time"

// Donation records a giving intent; payment collection happens outside
// this system.
type Donation struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	Program    string    `bson:"program" json:"program"`
	Amount     float64   `bson:"amount" json:"amount"`
	DonorName  string    `bson:"donor_name" json:"donorName"`
	DonorEmail string    `bson:"donor_email" json:"donorEmail"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

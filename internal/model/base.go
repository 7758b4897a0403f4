// Package model defines the documents stored by the portfolio API.
package model

import "time"

// Base carries the server-owned identity and timestamps of every document.
// Clients can neither set nor change these fields.
type Base struct {
	ID        string    `json:"_id" bson:"_id"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Header exposes the embedded Base to the persistence layer.
func (b *Base) Header() *Base { return b }

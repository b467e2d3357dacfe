package domain

import "time"

type Store struct {
	StoreID   string    `json:"id" dynamodbav:"store_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Address   string    `json:"address" dynamodbav:"address"`
	Active    bool      `json:"active" dynamodbav:"active"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

// DeletedStore is a tombstone kept for a grace window so an accidental
// delete can be restored. ExpireAt drives the table's TTL.
type DeletedStore struct {
	DeletedID     string    `json:"id" dynamodbav:"deleted_id"`
	Store         Store     `json:"store" dynamodbav:"store"`
	DeletedByRole string    `json:"deletedByRole,omitempty" dynamodbav:"deletedByRole"`
	DeletedAt     time.Time `json:"deletedAt" dynamodbav:"deleted_at"`
	ExpireAt      int64     `json:"expireAt" dynamodbav:"expire_at"` // unix seconds
}

type StoreInput struct {
	StoreID string `json:"id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Active  *bool  `json:"active"`
}

type UpdateStoreRequest struct {
	StoreID string  `json:"id" validate:"required"`
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Active  *bool   `json:"active"`
}

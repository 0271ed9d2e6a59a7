package dto

import "time"

// CreateReviewRequest entrada para reseñar un producto.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ReviewResponse salida de una reseña.
type ReviewResponse struct {
	ID        string    `json:"id"`
	UserName  string    `json:"user_name"`
	ProductID string    `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewListResponse lista de reseñas de un producto.
type ReviewListResponse struct {
	Items []ReviewResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

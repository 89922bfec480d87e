package dto

// CreateClassRequest represents class creation data
type CreateClassRequest struct {
	Name   string `json:"name" binding:"max=30"`
	Active *bool  `json:"active"`
}

// UpdateClassRequest represents class update data
type UpdateClassRequest struct {
	Name   string `json:"name" binding:"max=30"`
	Active *bool  `json:"active"`
}

package application

// ApplyRequest - DTO for applying to a job
type ApplyRequest struct {
	State State `json:"state" validate:"required,max=64"`
}

// ApplyResponse - DTO returned after a successful apply
type ApplyResponse struct {
	Applied Application `json:"applied"`
}

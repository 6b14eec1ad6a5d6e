package model

// MessageResponse is the body of every write acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
	User        string `json:"user"`
}

type HomeResponse struct {
	Developer        string `json:"developer"`
	MissionStatement string `json:"mission_statement"`
}

package rooms

import "time"

type createRoomRequest struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Password string `json:"password"`
}

type createRoomResponse struct {
	RoomID      string    `json:"roomId"`
	Name        string    `json:"name"`
	Kind        string    `json:"kind"`
	HasPassword bool      `json:"hasPassword"`
	CreatedAt   time.Time `json:"createdAt"`
}

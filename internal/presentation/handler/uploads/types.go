package uploads

import "github.com/swaroop-surya/chatroom/internal/domain"

type uploadResponse struct {
	OK   bool                   `json:"ok"`
	File *domain.FileAttachment `json:"file"`
}

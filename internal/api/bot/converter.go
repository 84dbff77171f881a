package bot

import (
	"time"

	"github.com/botbee/botbee-backend/internal/entity"
)

type botResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Tone            string    `json:"tone"`
	Language        string    `json:"language"`
	Greeting        string    `json:"greeting"`
	Avatar          string    `json:"avatar"`
	BrandGuidelines string    `json:"brand_guidelines"`
	Instructions    string    `json:"instructions"`
	CreatedAt       time.Time `json:"created_at"`
}

type listBotsResponse struct {
	Bots []*entity.BotSummary `json:"bots"`
}

func toBotResponse(bot *entity.Bot) *botResponse {
	return &botResponse{
		ID:              bot.ID,
		Name:            bot.Name,
		Description:     bot.Description,
		Tone:            string(bot.Tone),
		Language:        string(bot.Language),
		Greeting:        bot.Greeting,
		Avatar:          bot.Avatar,
		BrandGuidelines: bot.BrandGuidelines,
		Instructions:    bot.Instructions,
		CreatedAt:       bot.CreatedAt,
	}
}

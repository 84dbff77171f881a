package entity

// CreateBotRequest carries the bot-creation wizard payload.
type CreateBotRequest struct {
	UserID          string      `json:"-"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Tone            BotTone     `json:"tone"`
	Language        BotLanguage `json:"language"`
	Greeting        string      `json:"greeting"`
	Avatar          string      `json:"avatar"`
	BrandGuidelines string      `json:"brand_guidelines"`
	Instructions    string      `json:"instructions"`
}

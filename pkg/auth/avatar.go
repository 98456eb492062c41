package auth

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Avatars looks up profile photos through the Bot API. The bot client is
// created on first use.
type Avatars struct {
	botToken string

	mu  sync.Mutex
	bot *tgbotapi.BotAPI
}

func NewAvatars(botToken string) *Avatars {
	return &Avatars{botToken: botToken}
}

func (a *Avatars) client() (*tgbotapi.BotAPI, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.bot != nil {
		return a.bot, nil
	}

	bot, err := tgbotapi.NewBotAPI(a.botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize bot: %w", err)
	}
	a.bot = bot

	return bot, nil
}

// AvatarFilePath returns the file path of the user's latest profile photo,
// or an empty string when there is none.
func (a *Avatars) AvatarFilePath(ctx context.Context, userID int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	bot, err := a.client()
	if err != nil {
		return "", err
	}

	photos, err := bot.GetUserProfilePhotos(tgbotapi.UserProfilePhotosConfig{
		UserID: userID,
		Limit:  1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get user photos: %w", err)
	}

	if len(photos.Photos) == 0 || len(photos.Photos[0]) == 0 {
		return "", nil
	}

	file, err := bot.GetFile(tgbotapi.FileConfig{
		FileID: photos.Photos[0][0].FileID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get file: %w", err)
	}

	return file.FilePath, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken  string
	TelegramChatID int64
	CatalogPath    string
	JournalPath    string // пустой путь: журнал в памяти
	CameraDevice   int
	ReplayDir      string // каталог с кадрами вместо камеры
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		CatalogPath:   os.Getenv("QC_CATALOG"),
		JournalPath:   os.Getenv("QC_JOURNAL_PATH"),
		ReplayDir:     os.Getenv("QC_REPLAY_DIR"),
	}

	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	if v := os.Getenv("QC_CAMERA_DEVICE"); v != "" {
		device, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse QC_CAMERA_DEVICE: %w", err)
		}
		cfg.CameraDevice = device
	}

	return cfg, nil
}

// TelegramEnabled сообщает, настроены ли уведомления в Telegram
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

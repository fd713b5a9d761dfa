package container

import (
	"fmt"
	"io"
	"log"
	"os"

	"qc-station/config"
	"qc-station/internal/api"
	app "qc-station/internal/application"
	"qc-station/internal/domain/entity"
	"qc-station/internal/domain/port"
	"qc-station/internal/infrastructure/storage"
	"qc-station/internal/infrastructure/timing"
	"qc-station/internal/infrastructure/vision"
)

// memoryJournalLimit сколько записей держит журнал в памяти
const memoryJournalLimit = 1000

type Container struct {
	Catalog  entity.Catalog
	History  *entity.History
	Camera   port.Camera
	Journal  port.InspectionJournal
	Telegram *api.TelegramNotifier // nil, если Telegram не настроен
	Station  *app.Station

	closers []io.Closer
}

// New собирает станцию из конфигурации окружения и каталога
func New(cfg *config.Config, catalog entity.Catalog, out io.Writer) (*Container, error) {
	c := &Container{
		Catalog: catalog,
		History: entity.NewHistory(),
	}

	camera, err := openCamera(cfg)
	if err != nil {
		return nil, err
	}
	c.Camera = camera
	c.track(camera)

	if cfg.JournalPath != "" {
		journal, err := storage.OpenSQLiteJournal(cfg.JournalPath)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.Journal = journal
		c.track(journal)
	} else {
		c.Journal = storage.NewMemoryJournal(memoryJournalLimit)
	}

	if out == nil {
		out = os.Stdout
	}
	reporters := app.MultiReporter{api.NewConsoleReporter(out)}

	if cfg.TelegramEnabled() {
		bot, err := api.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID, c.History, c.Journal)
		if err != nil {
			// без уведомлений станция продолжает работать
			log.Printf("Telegram disabled: %v", err)
		} else {
			c.Telegram = bot
			reporters = append(reporters, bot)
		}
	}

	c.Station = app.NewStation(camera, timing.NewRealSleeper(), catalog, c.History, reporters, c.Journal)
	return c, nil
}

func openCamera(cfg *config.Config) (port.Camera, error) {
	if cfg.ReplayDir != "" {
		log.Printf("Replaying frames from %s", cfg.ReplayDir)
		return vision.NewReplayCamera(cfg.ReplayDir)
	}
	camera, err := vision.NewGoCVCamera(cfg.CameraDevice)
	if err != nil {
		return nil, fmt.Errorf("open camera: %w", err)
	}
	return camera, nil
}

func (c *Container) track(v any) {
	if closer, ok := v.(io.Closer); ok {
		c.closers = append(c.closers, closer)
	}
}

// Close освобождает камеру и журнал
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			log.Printf("Error closing resource: %v", err)
		}
	}
	c.closers = nil
}

package api

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"qc-station/internal/domain/entity"
	"qc-station/internal/domain/port"
)

// TelegramNotifier шлёт вердикты в чат и отвечает на команды
type TelegramNotifier struct {
	api     *tgbotapi.BotAPI
	chatID  int64
	history *entity.History
	journal port.InspectionJournal
}

// NewTelegramNotifier создаёт бота для чата chatID
func NewTelegramNotifier(token string, chatID int64, history *entity.History, journal port.InspectionJournal) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &TelegramNotifier{
		api:     api,
		chatID:  chatID,
		history: history,
		journal: journal,
	}, nil
}

func (n *TelegramNotifier) ReportVerdict(ctx context.Context, report port.CycleReport) error {
	return n.send(n.chatID, FormatVerdict(report))
}

func (n *TelegramNotifier) ReportFailure(ctx context.Context, cycleID string, err error) error {
	return n.send(n.chatID, FormatFailure(cycleID, err))
}

// Run обрабатывает команды до отмены контекста
func (n *TelegramNotifier) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := n.api.GetUpdatesChan(u)
	defer n.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			reply := n.handleCommand(ctx, update.Message.Command())
			if err := n.send(update.Message.Chat.ID, reply); err != nil {
				log.Printf("Error sending message: %v", err)
			}
		}
	}
}

// handleCommand возвращает ответ на команду бота
func (n *TelegramNotifier) handleCommand(ctx context.Context, command string) string {
	switch command {
	case "start":
		return msgStart

	case "help":
		return msgHelp

	case "stats":
		return FormatStats(n.history.Snapshot())

	case "last":
		if n.journal == nil {
			return msgJournalEmpty
		}
		records, err := n.journal.Recent(ctx, lastLimit)
		if err != nil {
			log.Printf("Error reading journal: %v", err)
			return msgJournalError
		}
		return FormatRecent(records)

	default:
		return msgUnknownCommand
	}
}

// send отправляет текстовое сообщение
func (n *TelegramNotifier) send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := n.api.Send(msg)
	return err
}

var _ port.VerdictReporter = (*TelegramNotifier)(nil)

package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"qc-station/internal/domain/entity"
	"qc-station/internal/domain/port"
	"qc-station/internal/infrastructure/storage"
)

func rejectReport() port.CycleReport {
	v := entity.Reject(12, 2, -0.917, map[int]int{12: 10})
	return port.CycleReport{
		Record: entity.NewInspectionRecord("0123456789ab", time.Date(2026, 1, 2, 10, 30, 0, 0, time.UTC),
			entity.ColorGray, true, 4500, v, entity.HistorySnapshot{Good: 3, Bad: 1}),
		Verdict: v,
	}
}

func TestFormatVerdict_Reject(t *testing.T) {
	text := FormatVerdict(rejectReport())

	require.Contains(t, text, "REJECT")
	require.Contains(t, text, "Компонент 12, фаза 2: -91.7%")
	require.Contains(t, text, "(не распознан)")
	require.Contains(t, text, "4500 мкс")
	require.Contains(t, text, "Годные: 3, брак: 1, всего: 4")
}

func TestFormatVerdict_Accept(t *testing.T) {
	v := entity.Accept(nil)
	text := FormatVerdict(port.CycleReport{
		Record:  entity.InspectionRecord{Color: entity.ColorBlue, Accepted: true, Good: 1},
		Verdict: v,
	})

	require.Contains(t, text, "ACCEPT")
	require.NotContains(t, text, "Компонент")
	require.NotContains(t, text, "не распознан")
}

func TestFormatFailure_ShortensID(t *testing.T) {
	text := FormatFailure("0123456789ab", errors.New("camera unplugged"))
	require.Contains(t, text, "01234567 ")
	require.Contains(t, text, "camera unplugged")
}

func TestFormatRecent(t *testing.T) {
	require.Equal(t, msgJournalEmpty, FormatRecent(nil))

	text := FormatRecent([]entity.InspectionRecord{rejectReport().Record})
	require.Equal(t, "10:30:00 REJECT gray #12 фаза 2 -91.7%", text)
}

func TestTelegramNotifier_HandleCommand(t *testing.T) {
	ctx := context.Background()
	history := entity.NewHistory()
	history.RecordAccept()
	journal := storage.NewMemoryJournal(0)
	n := &TelegramNotifier{history: history, journal: journal}

	require.Equal(t, msgStart, n.handleCommand(ctx, "start"))
	require.Equal(t, msgHelp, n.handleCommand(ctx, "help"))
	require.Equal(t, msgUnknownCommand, n.handleCommand(ctx, "check"))
	require.Contains(t, n.handleCommand(ctx, "stats"), "Годные: 1, брак: 0")
	require.Equal(t, msgJournalEmpty, n.handleCommand(ctx, "last"))

	require.NoError(t, journal.Append(ctx, rejectReport().Record))
	require.Contains(t, n.handleCommand(ctx, "last"), "REJECT gray #12")
}

package api

import (
	"fmt"
	"strings"

	"qc-station/internal/domain/entity"
	"qc-station/internal/domain/port"
)

const (
	msgStart = `👋 Станция контроля плат на связи.

Сюда приходят вердикты по каждой проверенной плате.

📋 Команды:
/stats — счётчики годных и брака
/last — последние проверки
/help — справка`

	msgHelp = `ℹ️ Что умеет бот:

• присылает ACCEPT или REJECT после каждого цикла
• сообщает о сбоях камеры и подбора выдержки

📋 Команды:
/stats — счётчики годных и брака
/last — последние проверки`

	msgUnknownCommand = "❓ Неизвестная команда. Используйте /help для справки."
	msgJournalEmpty   = "📭 Проверок пока не было."
	msgJournalError   = "⚠️ Не удалось прочитать журнал."
)

// lastLimit число записей в ответе на /last
const lastLimit = 5

// FormatVerdict текст уведомления о вердикте
func FormatVerdict(report port.CycleReport) string {
	r := report.Record
	var sb strings.Builder
	if report.Verdict.Accepted {
		sb.WriteString("✅ ACCEPT\n")
	} else {
		sb.WriteString("❌ REJECT\n")
		fmt.Fprintf(&sb, "Компонент %d, фаза %d: %s\n",
			report.Verdict.ComponentID, report.Verdict.Phase, formatPercent(report.Verdict.PercentChange))
	}
	fmt.Fprintf(&sb, "Цвет: %s", r.Color)
	if r.ColorFallback {
		sb.WriteString(" (не распознан)")
	}
	fmt.Fprintf(&sb, "\nВыдержка: %d мкс\n", r.ExposureUs)
	sb.WriteString(formatCounters(entity.HistorySnapshot{Good: r.Good, Bad: r.Bad}))
	return sb.String()
}

// FormatFailure текст уведомления о прерванном цикле
func FormatFailure(cycleID string, err error) string {
	return fmt.Sprintf("⚠️ Цикл %s прерван: %v", shortID(cycleID), err)
}

// FormatStats текст ответа на /stats
func FormatStats(s entity.HistorySnapshot) string {
	return "📊 " + formatCounters(s)
}

// FormatRecent текст ответа на /last
func FormatRecent(records []entity.InspectionRecord) string {
	if len(records) == 0 {
		return msgJournalEmpty
	}
	lines := make([]string, 0, len(records))
	for _, r := range records {
		line := fmt.Sprintf("%s %s %s", r.InspectedAt.Format("15:04:05"), verdictLabel(r.Accepted), r.Color)
		if !r.Accepted {
			line += fmt.Sprintf(" #%d фаза %d %s", r.ComponentID, r.Phase, formatPercent(r.PercentChange))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func formatCounters(s entity.HistorySnapshot) string {
	return fmt.Sprintf("Годные: %d, брак: %d, всего: %d", s.Good, s.Bad, s.Total())
}

func formatPercent(pct float64) string {
	return fmt.Sprintf("%+.1f%%", pct*100)
}

func verdictLabel(accepted bool) string {
	if accepted {
		return "ACCEPT"
	}
	return "REJECT"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

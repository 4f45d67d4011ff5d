package content

import "time"

// Периоды ретроградного Меркурия (UTC). Таблицу достаточно пополнять
// раз в год.
var retrogradePeriods = []struct {
	from, to time.Time
}{
	{date(2025, 3, 15), date(2025, 4, 7)},
	{date(2025, 7, 18), date(2025, 8, 11)},
	{date(2025, 11, 9), date(2025, 11, 29)},
	{date(2026, 2, 26), date(2026, 3, 20)},
	{date(2026, 6, 29), date(2026, 7, 23)},
	{date(2026, 10, 24), date(2026, 11, 13)},
}

var mercuryFacts = []string{
	"В ретроградный Меркурий гномы перепроверяют договоры дважды.",
	"Гном-почтальон в ретроград носит письма медленнее — и это нормально.",
	"Ретроградный Меркурий — лучшее время разобрать сундук со старыми вещами.",
	"Гномы не начинают рыть новые тоннели, пока Меркурий пятится.",
}

// MercuryStatus статус Меркурия с гномьей припиской
type MercuryStatus struct {
	Retrograde bool   `json:"retrograde"`
	Date       string `json:"date"`
	Until      string `json:"until,omitempty"`
	Next       string `json:"next,omitempty"`
	Fact       string `json:"fact"`
}

// Mercury сообщает, ретрограден ли Меркурий сегодня, и до/с какой даты
func (p *Provider) Mercury() MercuryStatus {
	now := p.now().UTC()
	status := MercuryStatus{Date: now.Format("2006-01-02")}
	status.Fact = mercuryFacts[now.YearDay()%len(mercuryFacts)]

	for _, period := range retrogradePeriods {
		if !now.Before(period.from) && now.Before(period.to) {
			status.Retrograde = true
			status.Until = period.to.Format("2006-01-02")
			return status
		}
		if now.Before(period.from) {
			status.Next = period.from.Format("2006-01-02")
			return status
		}
	}
	return status
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

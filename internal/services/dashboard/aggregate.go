package dashboard

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/magabrotheeeer/gym-admin/internal/lib/plan"
	"github.com/magabrotheeeer/gym-admin/internal/models"
)

const (
	// SeriesMonths число месячных корзин в графиках выручки и роста.
	SeriesMonths = 6
	// RecentClientsLimit сколько последних клиентов учитывается в графике роста.
	RecentClientsLimit = 100
	// NotificationWindowDays ширина окна уведомлений в днях в обе стороны от сегодня.
	NotificationWindowDays = 7
)

const day = 24 * time.Hour

func monthKey(year int, month time.Month) int {
	return year*12 + int(month) - 1
}

// monthStart первое число месяца, в который попадает t.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// WindowStart первый день самой старой корзины шестимесячного ряда.
func WindowStart(now time.Time) models.Date {
	return models.NewDate(monthStart(now).AddDate(0, -(SeriesMonths - 1), 0))
}

// MonthlyRevenue сумма платежей текущего календарного месяца, два знака после точки.
func MonthlyRevenue(payments []models.Payment, now time.Time) string {
	current := monthKey(now.Year(), now.Month())
	var sum float64
	for _, p := range payments {
		if monthKey(p.PaymentDate.Year(), p.PaymentDate.Month()) == current {
			sum += p.Amount
		}
	}
	return fmt.Sprintf("%.2f", sum)
}

// BuildSeries раскладывает платежи и моменты создания клиентов по шести месячным
// корзинам, заканчивающимся текущим месяцем. Записи вне окна игнорируются.
func BuildSeries(now time.Time, payments []models.Payment, createdAt []time.Time) ([]models.RevenuePoint, []models.GrowthPoint) {
	revenue := make([]models.RevenuePoint, SeriesMonths)
	growth := make([]models.GrowthPoint, SeriesMonths)
	index := make(map[int]int, SeriesMonths)

	first := monthStart(now).AddDate(0, -(SeriesMonths - 1), 0)
	for i := range SeriesMonths {
		m := first.AddDate(0, i, 0)
		index[monthKey(m.Year(), m.Month())] = i
		revenue[i] = models.RevenuePoint{Month: m.Format("Jan 2006")}
		growth[i] = models.GrowthPoint{Month: m.Format("Jan")}
	}

	for _, p := range payments {
		if i, ok := index[monthKey(p.PaymentDate.Year(), p.PaymentDate.Month())]; ok {
			revenue[i].Revenue += p.Amount
		}
	}
	for _, t := range createdAt {
		t = t.UTC()
		if i, ok := index[monthKey(t.Year(), t.Month())]; ok {
			growth[i].Clients++
		}
	}
	return revenue, growth
}

// PlanDistribution считает клиентов по известным тарифам. Неизвестные тарифы пропускаются.
func PlanDistribution(planTypes []string) []models.PlanSlice {
	counts := make(map[string]int, 3)
	for _, p := range planTypes {
		if plan.IsValid(p) {
			counts[p]++
		}
	}

	types := plan.Types()
	out := make([]models.PlanSlice, 0, len(types))
	for _, p := range types {
		out = append(out, models.PlanSlice{Name: p, Value: counts[p]})
	}
	return out
}

// BuildNotifications формирует уведомления: сначала истёкшие (от недавних к давним),
// затем истекающие (от ближайших к дальним).
func BuildNotifications(now time.Time, expired, expiring []models.Client) models.NotificationList {
	expired = sortedByEndDate(expired, true)
	expiring = sortedByEndDate(expiring, false)

	list := make([]models.Notification, 0, len(expired)+len(expiring))
	for _, c := range expired {
		daysAgo := int(math.Floor(float64(now.Sub(c.EndDate.Time)) / float64(day)))
		list = append(list, models.Notification{
			ID:      "expired-" + c.ID,
			Type:    models.NotificationExpired,
			Title:   "Membership Expired",
			Message: fmt.Sprintf("%s's membership expired %d %s ago", c.FullName, daysAgo, days(daysAgo)),
			Client:  notificationClient(c),
			Date:    c.EndDate,
			DaysAgo: &daysAgo,
		})
	}
	for _, c := range expiring {
		daysLeft := int(math.Ceil(float64(c.EndDate.Time.Sub(now)) / float64(day)))
		list = append(list, models.Notification{
			ID:       "expiring-" + c.ID,
			Type:     models.NotificationExpiring,
			Title:    "Membership Expiring Soon",
			Message:  fmt.Sprintf("%s's membership expires in %d %s", c.FullName, daysLeft, days(daysLeft)),
			Client:   notificationClient(c),
			Date:     c.EndDate,
			DaysLeft: &daysLeft,
		})
	}
	return models.NotificationList{Notifications: list, UnreadCount: len(list)}
}

func sortedByEndDate(clients []models.Client, desc bool) []models.Client {
	out := make([]models.Client, len(clients))
	copy(out, clients)
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].EndDate.After(out[j].EndDate.Time)
		}
		return out[i].EndDate.Before(out[j].EndDate.Time)
	})
	return out
}

func notificationClient(c models.Client) models.NotificationClient {
	return models.NotificationClient{ID: c.ID, Name: c.FullName, Email: c.Email, Phone: c.Phone}
}

func days(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}

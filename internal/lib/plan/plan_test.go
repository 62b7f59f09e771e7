package plan

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEndDate_TableTests(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		planType string
		want     time.Time
	}{
		{
			name:     "monthly mid month",
			start:    date(2024, 1, 15),
			planType: Monthly,
			want:     date(2024, 2, 15),
		},
		{
			name:     "quarterly mid month",
			start:    date(2024, 1, 15),
			planType: Quarterly,
			want:     date(2024, 4, 15),
		},
		{
			name:     "yearly mid month",
			start:    date(2024, 1, 15),
			planType: Yearly,
			want:     date(2025, 1, 15),
		},
		{
			name:     "monthly year transition",
			start:    date(2024, 12, 10),
			planType: Monthly,
			want:     date(2025, 1, 10),
		},
		{
			name:     "quarterly year transition",
			start:    date(2024, 11, 20),
			planType: Quarterly,
			want:     date(2025, 2, 20),
		},
		{
			name:     "unknown plan keeps start date",
			start:    date(2024, 3, 1),
			planType: "Weekly",
			want:     date(2024, 3, 1),
		},
		{
			name:     "empty plan keeps start date",
			start:    date(2024, 3, 1),
			planType: "",
			want:     date(2024, 3, 1),
		},
		{
			name:     "plan type is case sensitive",
			start:    date(2024, 3, 1),
			planType: "monthly",
			want:     date(2024, 3, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EndDate(tt.start, tt.planType)
			if !got.Equal(tt.want) {
				t.Errorf("EndDate(%v, %q) = %v, want %v", tt.start, tt.planType, got, tt.want)
			}
		})
	}
}

// Переполнение дня месяца нормализуется вперёд, как в time.AddDate.
func TestEndDate_DayOverflow(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		planType string
		want     time.Time
	}{
		{
			name:     "jan 31 monthly in leap year",
			start:    date(2024, 1, 31),
			planType: Monthly,
			want:     date(2024, 3, 2),
		},
		{
			name:     "jan 31 monthly in common year",
			start:    date(2023, 1, 31),
			planType: Monthly,
			want:     date(2023, 3, 3),
		},
		{
			name:     "nov 30 quarterly",
			start:    date(2024, 11, 30),
			planType: Quarterly,
			want:     date(2025, 3, 2),
		},
		{
			name:     "leap day yearly",
			start:    date(2024, 2, 29),
			planType: Yearly,
			want:     date(2025, 3, 1),
		},
		{
			name:     "mar 31 monthly",
			start:    date(2024, 3, 31),
			planType: Monthly,
			want:     date(2024, 5, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EndDate(tt.start, tt.planType)
			if !got.Equal(tt.want) {
				t.Errorf("EndDate(%v, %q) = %v, want %v", tt.start, tt.planType, got, tt.want)
			}
		})
	}
}

func TestEndDate_SameResultForSameInput(t *testing.T) {
	start := date(2025, 8, 31)
	for _, p := range Types() {
		first := EndDate(start, p)
		second := EndDate(start, p)
		if !first.Equal(second) {
			t.Errorf("EndDate is not deterministic for %s: %v != %v", p, first, second)
		}
	}
}

func TestIsValid(t *testing.T) {
	for _, p := range []string{Monthly, Quarterly, Yearly} {
		if !IsValid(p) {
			t.Errorf("IsValid(%q) = false, want true", p)
		}
	}
	for _, p := range []string{"", "Weekly", "YEARLY"} {
		if IsValid(p) {
			t.Errorf("IsValid(%q) = true, want false", p)
		}
	}
}

func TestTypes_ReturnsCopy(t *testing.T) {
	got := Types()
	got[0] = "Mutated"

	if Types()[0] != Monthly {
		t.Errorf("Types() exposes internal slice")
	}
}

package models

// DashboardStats ответ эндпоинта статистики дашборда.
type DashboardStats struct {
	Stats                StatsSummary   `json:"stats"`
	RevenueData          []RevenuePoint `json:"revenueData"`
	ClientGrowthData     []GrowthPoint  `json:"clientGrowthData"`
	PlanDistributionData []PlanSlice    `json:"planDistributionData"`
}

// StatsSummary итоговые счётчики.
type StatsSummary struct {
	TotalClients   int    `json:"totalClients"`
	ActiveClients  int    `json:"activeClients"`
	ExpiredClients int    `json:"expiredClients"`
	MonthlyRevenue string `json:"monthlyRevenue"`
}

// RevenuePoint выручка за календарный месяц.
type RevenuePoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// GrowthPoint количество новых клиентов за календарный месяц.
type GrowthPoint struct {
	Month   string `json:"month"`
	Clients int    `json:"clients"`
}

// PlanSlice количество активных клиентов на тарифе.
type PlanSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

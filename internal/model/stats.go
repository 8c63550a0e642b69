package model

// Stats сводка для панели администратора
type Stats struct {
	TotalClients        int64   `json:"totalClients"`
	ActiveTrainers      int64   `json:"activeTrainers"`
	ActiveGroupSessions int64   `json:"todaySessions"`
	MonthlyRevenue      float64 `json:"monthlyRevenue"`
}

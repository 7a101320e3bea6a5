package models

type Stats struct {
	Total        int     `json:"total"`
	Pending      int     `json:"pending"`
	Processing   int     `json:"processing"`
	Shipped      int     `json:"shipped"`
	Delivered    int     `json:"delivered"`
	Cancelled    int     `json:"cancelled"`
	TotalRevenue float64 `json:"totalRevenue"`
	TodayOrders  int     `json:"todayOrders"`
	TodayRevenue float64 `json:"todayRevenue"`
}

package models

// DashboardMetrics summarises one farm's ledger and activity plan.
type DashboardMetrics struct {
	TotalExpenses       float64 `json:"totalExpenses"`
	TotalIncome         float64 `json:"totalIncome"`
	NetProfit           float64 `json:"netProfit"`
	ExpenseCount        int     `json:"expenseCount"`
	IncomeCount         int     `json:"incomeCount"`
	ActiveActivities    int     `json:"activeActivities"`
	CompletedActivities int     `json:"completedActivities"`
	TotalActivities     int     `json:"totalActivities"`
}

// ComputeMetrics reduces the three collections of a farm. Empty input yields zeros.
func ComputeMetrics(expenses []Expense, income []Income, activities []Activity) DashboardMetrics {
	var m DashboardMetrics
	for _, e := range expenses {
		m.TotalExpenses += e.Amount
	}
	for _, i := range income {
		m.TotalIncome += i.Amount
	}
	for _, a := range activities {
		if a.Completed {
			m.CompletedActivities++
		} else {
			m.ActiveActivities++
		}
	}
	m.NetProfit = m.TotalIncome - m.TotalExpenses
	m.ExpenseCount = len(expenses)
	m.IncomeCount = len(income)
	m.TotalActivities = len(activities)
	return m
}

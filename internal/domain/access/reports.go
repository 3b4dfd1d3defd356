package access

import "time"

type AccessEntry struct {
	Timestamp time.Time `json:"timestamp"`
	BusNumber int       `json:"bus_number"`
}

// EmployeeHistory is the full access log of one employee, ascending by time.
type EmployeeHistory struct {
	Matricula     int64         `json:"matricula"`
	Nome          string        `json:"nome"`
	Accesses      []AccessEntry `json:"accesses"`
	TotalAccesses int           `json:"total_accesses"`
}

type TimestampEntry struct {
	Timestamp time.Time `json:"timestamp"`
}

type BusEmployeeGroup struct {
	Matricula int64            `json:"matricula"`
	Nome      string           `json:"nome"`
	Accesses  []TimestampEntry `json:"accesses"`
}

// BusReport lists everyone who used one bus, one group per employee.
type BusReport struct {
	BusNumber     int                `json:"bus_number"`
	Employees     []BusEmployeeGroup `json:"employees"`
	TotalAccesses int                `json:"total_accesses"`
}

type DailyEmployeeGroup struct {
	Matricula int64    `json:"matricula"`
	Nome      string   `json:"nome"`
	Times     []string `json:"times"`
}

type DailyBusGroup struct {
	BusNumber          int                  `json:"bus_number"`
	AccessesByEmployee []DailyEmployeeGroup `json:"accesses_by_employee"`
}

// DailyReport groups one calendar day's events per bus, then per employee,
// with per-event values reduced to time-of-day strings.
type DailyReport struct {
	Date          string          `json:"date"`
	Buses         []DailyBusGroup `json:"daily_report"`
	TotalAccesses int             `json:"total_accesses"`
}

// BuildEmployeeHistory shapes rows already sorted by timestamp.
func BuildEmployeeHistory(rows []Row) EmployeeHistory {
	history := EmployeeHistory{
		Matricula:     rows[0].Matricula,
		Nome:          rows[0].Nome,
		Accesses:      make([]AccessEntry, 0, len(rows)),
		TotalAccesses: len(rows),
	}
	for _, row := range rows {
		history.Accesses = append(history.Accesses, AccessEntry{Timestamp: row.Timestamp, BusNumber: row.BusNumber})
	}
	return history
}

// BuildBusReport shapes rows already sorted by (matricula, timestamp).
func BuildBusReport(busNumber int, rows []Row) BusReport {
	report := BusReport{BusNumber: busNumber, TotalAccesses: len(rows)}
	for _, group := range GroupConsecutive(rows, func(r Row) int64 { return r.Matricula }) {
		entry := BusEmployeeGroup{
			Matricula: group[0].Matricula,
			Nome:      group[0].Nome,
			Accesses:  make([]TimestampEntry, 0, len(group)),
		}
		for _, row := range group {
			entry.Accesses = append(entry.Accesses, TimestampEntry{Timestamp: row.Timestamp})
		}
		report.Employees = append(report.Employees, entry)
	}
	return report
}

// BuildDailyReport shapes rows already sorted by (bus, matricula, timestamp).
func BuildDailyReport(day time.Time, rows []Row) DailyReport {
	report := DailyReport{Date: day.Format("2006-01-02"), TotalAccesses: len(rows)}
	for _, busGroup := range GroupConsecutive(rows, func(r Row) int { return r.BusNumber }) {
		bus := DailyBusGroup{BusNumber: busGroup[0].BusNumber}
		for _, empGroup := range GroupConsecutive(busGroup, func(r Row) int64 { return r.Matricula }) {
			entry := DailyEmployeeGroup{
				Matricula: empGroup[0].Matricula,
				Nome:      empGroup[0].Nome,
				Times:     make([]string, 0, len(empGroup)),
			}
			for _, row := range empGroup {
				entry.Times = append(entry.Times, row.Timestamp.Format("15:04:05"))
			}
			bus.AccessesByEmployee = append(bus.AccessesByEmployee, entry)
		}
		report.Buses = append(report.Buses, bus)
	}
	return report
}

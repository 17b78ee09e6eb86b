package domain

// ParticipantStat is one row of the monthly per-participant breakdown.
type ParticipantStat struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	PhoneNumber      string  `json:"phoneNumber"`
	AttendedSessions int     `json:"attendedSessions"`
	TotalSessions    int     `json:"totalSessions"`
	AttendanceRate   float64 `json:"attendanceRate"`
}

// SessionStat is one row of the monthly per-session breakdown.
type SessionStat struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Date           string   `json:"date"`
	Time           string   `json:"time"`
	Attendees      int      `json:"attendees"`
	AttendeeNames  []string `json:"attendeeNames"`
	AttendanceRate int      `json:"attendanceRate"`
}

// DayCount and TimeCount rank popular weekdays and start times. Order of
// equal counts follows first appearance in the session list.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type TimeCount struct {
	Time  string `json:"time"`
	Count int    `json:"count"`
}

// ReportInsights aggregates the month-level rollups.
type ReportInsights struct {
	TotalParticipants     int              `json:"totalParticipants"`
	TotalAttendance       int              `json:"totalAttendance"`
	AverageAttendance     int              `json:"averageAttendance"`
	MostActiveParticipant *ParticipantStat `json:"mostActiveParticipant"`
	AttendanceRate        int              `json:"attendanceRate"`
	PopularDays           []DayCount       `json:"popularDays"`
	PopularTimes          []TimeCount      `json:"popularTimes"`
}

// MonthlyReport is the full report for one calendar month.
type MonthlyReport struct {
	Year             int               `json:"year"`
	Month            int               `json:"month"`
	TotalSessions    int               `json:"totalSessions"`
	ParticipantStats []ParticipantStat `json:"participantStats"`
	SessionDetails   []SessionStat     `json:"sessionDetails"`
	Insights         ReportInsights    `json:"insights"`
}

// MonthSummary is one entry of the available-months listing.
type MonthSummary struct {
	Year         int `json:"year"`
	Month        int `json:"month"`
	SessionCount int `json:"sessionCount"`
}

// OverallStats is the all-time statistics rollup.
type OverallStats struct {
	TotalSessions               int `json:"totalSessions"`
	TotalParticipants           int `json:"totalParticipants"`
	TotalResponses              int `json:"totalResponses"`
	TotalAttendance             int `json:"totalAttendance"`
	RecentSessions              int `json:"recentSessions"`
	OverallAttendanceRate       int `json:"overallAttendanceRate"`
	ResponseRate                int `json:"responseRate"`
	AverageAttendancePerSession int `json:"averageAttendancePerSession"`
}

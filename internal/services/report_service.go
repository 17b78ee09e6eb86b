package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/galvital/YogaMoves/domain"
)

// ReportServiceImpl implements domain.ReportService. Everything here is a
// pure read over sessions and responses; no method writes anything back.
type ReportServiceImpl struct {
	sessionRepo  domain.SessionRepository
	responseRepo domain.ResponseRepository
	userRepo     domain.UserRepository
}

// NewReportService creates a new report service
func NewReportService(
	sessionRepo domain.SessionRepository,
	responseRepo domain.ResponseRepository,
	userRepo domain.UserRepository,
) domain.ReportService {
	return &ReportServiceImpl{
		sessionRepo:  sessionRepo,
		responseRepo: responseRepo,
		userRepo:     userRepo,
	}
}

// MonthlyReport implements domain.ReportService. A month with zero sessions
// yields an all-zero report; every rate calculation guards its divisor.
func (s *ReportServiceImpl) MonthlyReport(ctx context.Context, year, month int) (*domain.MonthlyReport, error) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	sessions, err := s.sessionRepo.ListActiveByDateRange(ctx, first.Format(dateLayout), last.Format(dateLayout))
	if err != nil {
		return nil, err
	}

	participants, err := s.userRepo.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}

	sessionIDs := make([]string, len(sessions))
	for i := range sessions {
		sessionIDs[i] = sessions[i].ID
	}
	responses, err := s.responseRepo.ListBySessions(ctx, sessionIDs)
	if err != nil {
		return nil, err
	}

	// Joining responses per participant and per session, in one pass.
	joinedByParticipant := make(map[string]int)
	joinedBySession := make(map[string][]string)
	for _, resp := range responses {
		if resp.Status != domain.StatusJoining {
			continue
		}
		joinedByParticipant[resp.ParticipantID]++
		joinedBySession[resp.SessionID] = append(joinedBySession[resp.SessionID], resp.ParticipantID)
	}

	names := make(map[string]string, len(participants))
	for _, p := range participants {
		names[p.ID] = p.Name
	}

	totalSessions := len(sessions)
	totalParticipants := len(participants)

	participantStats := make([]domain.ParticipantStat, 0, totalParticipants)
	for _, p := range participants {
		attended := joinedByParticipant[p.ID]
		rate := 0.0
		if totalSessions > 0 {
			rate = round2(float64(attended) / float64(totalSessions) * 100)
		}
		participantStats = append(participantStats, domain.ParticipantStat{
			ID:               p.ID,
			Name:             p.Name,
			PhoneNumber:      p.PhoneNumber,
			AttendedSessions: attended,
			TotalSessions:    totalSessions,
			AttendanceRate:   rate,
		})
	}
	sort.SliceStable(participantStats, func(i, j int) bool {
		return participantStats[i].AttendedSessions > participantStats[j].AttendedSessions
	})

	totalAttendance := 0
	sessionDetails := make([]domain.SessionStat, 0, totalSessions)
	for _, session := range sessions {
		attendeeIDs := joinedBySession[session.ID]
		attendeeNames := make([]string, 0, len(attendeeIDs))
		for _, id := range attendeeIDs {
			attendeeNames = append(attendeeNames, names[id])
		}
		totalAttendance += len(attendeeIDs)

		rate := 0
		if totalParticipants > 0 {
			rate = roundInt(float64(len(attendeeIDs)) / float64(totalParticipants) * 100)
		}
		sessionDetails = append(sessionDetails, domain.SessionStat{
			ID:             session.ID,
			Title:          session.Title,
			Date:           session.Date,
			Time:           session.Time,
			Attendees:      len(attendeeIDs),
			AttendeeNames:  attendeeNames,
			AttendanceRate: rate,
		})
	}

	insights := domain.ReportInsights{
		TotalParticipants: totalParticipants,
		TotalAttendance:   totalAttendance,
		PopularDays:       popularDays(sessions),
		PopularTimes:      popularTimes(sessions),
	}
	if totalSessions > 0 {
		insights.AverageAttendance = roundInt(float64(totalAttendance) / float64(totalSessions))
	}
	if totalSessions > 0 && totalParticipants > 0 {
		insights.AttendanceRate = roundInt(float64(totalAttendance) / float64(totalSessions*totalParticipants) * 100)
	}
	if len(participantStats) > 0 && participantStats[0].AttendedSessions > 0 {
		top := participantStats[0]
		insights.MostActiveParticipant = &top
	}

	return &domain.MonthlyReport{
		Year:             year,
		Month:            month,
		TotalSessions:    totalSessions,
		ParticipantStats: participantStats,
		SessionDetails:   sessionDetails,
		Insights:         insights,
	}, nil
}

// AvailableMonths implements domain.ReportService. Months are listed newest
// first with the count of active sessions in each.
func (s *ReportServiceImpl) AvailableMonths(ctx context.Context) ([]domain.MonthSummary, error) {
	dates, err := s.sessionRepo.ListActiveDates(ctx)
	if err != nil {
		return nil, err
	}

	type ym struct{ year, month int }
	counts := make(map[ym]int)
	for _, date := range dates {
		t, err := time.Parse(dateLayout, date)
		if err != nil {
			continue
		}
		counts[ym{t.Year(), int(t.Month())}]++
	}

	months := make([]domain.MonthSummary, 0, len(counts))
	for key, count := range counts {
		months = append(months, domain.MonthSummary{
			Year:         key.year,
			Month:        key.month,
			SessionCount: count,
		})
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year > months[j].Year
		}
		return months[i].Month > months[j].Month
	})
	return months, nil
}

// OverallStats implements domain.ReportService
func (s *ReportServiceImpl) OverallStats(ctx context.Context) (*domain.OverallStats, error) {
	totalSessions, err := s.sessionRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	totalParticipants, err := s.userRepo.CountParticipants(ctx)
	if err != nil {
		return nil, err
	}
	totalResponses, err := s.responseRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalAttendance, err := s.responseRepo.CountJoining(ctx)
	if err != nil {
		return nil, err
	}

	since := time.Now().UTC().AddDate(0, 0, -30).Format(dateLayout)
	recentSessions, err := s.sessionRepo.CountActiveSince(ctx, since)
	if err != nil {
		return nil, err
	}

	stats := &domain.OverallStats{
		TotalSessions:     totalSessions,
		TotalParticipants: totalParticipants,
		TotalResponses:    totalResponses,
		TotalAttendance:   totalAttendance,
		RecentSessions:    recentSessions,
	}
	if slots := totalSessions * totalParticipants; slots > 0 {
		stats.OverallAttendanceRate = roundInt(float64(totalAttendance) / float64(slots) * 100)
		stats.ResponseRate = roundInt(float64(totalResponses) / float64(slots) * 100)
	}
	if totalSessions > 0 {
		stats.AverageAttendancePerSession = roundInt(float64(totalAttendance) / float64(totalSessions))
	}
	return stats, nil
}

// popularDays ranks session weekdays by frequency, top 3. Ties keep the
// order the days first appeared in the session list.
func popularDays(sessions []domain.ClassSession) []domain.DayCount {
	counts := make(map[string]int)
	order := []string{}
	for _, session := range sessions {
		t, err := time.Parse(dateLayout, session.Date)
		if err != nil {
			continue
		}
		day := t.Weekday().String()
		if counts[day] == 0 {
			order = append(order, day)
		}
		counts[day]++
	}

	ranked := make([]domain.DayCount, 0, len(order))
	for _, day := range order {
		ranked = append(ranked, domain.DayCount{Day: day, Count: counts[day]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	return ranked
}

// popularTimes ranks exact start-time strings by frequency, top 3, same tie
// rule as popularDays.
func popularTimes(sessions []domain.ClassSession) []domain.TimeCount {
	counts := make(map[string]int)
	order := []string{}
	for _, session := range sessions {
		if counts[session.Time] == 0 {
			order = append(order, session.Time)
		}
		counts[session.Time]++
	}

	ranked := make([]domain.TimeCount, 0, len(order))
	for _, clock := range order {
		ranked = append(ranked, domain.TimeCount{Time: clock, Count: counts[clock]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	return ranked
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
